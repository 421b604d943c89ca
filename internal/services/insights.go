package services

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"wearwise/style-advisor/internal/models"
)

// BuildInsights aggregates a session's analysis history. Non-clothing
// results are counted separately and left out of the breakdowns.
func BuildInsights(sessionID uuid.UUID, records []models.AnalysisRecord, profile *models.UserProfile) models.StyleInsights {
	itemTypes := make(map[string]int)
	colors := make(map[string]int)
	tags := make(map[string]int)

	insights := models.StyleInsights{
		SessionID:        sessionID,
		TotalAnalyses:    len(records),
		PreferredMatches: []string{},
	}

	for _, record := range records {
		attrs := record.Attributes
		if attrs.NotClothing() {
			insights.NonClothing++
			continue
		}
		if attrs.ItemType != models.ItemTypeUnknown && attrs.ItemType != "" {
			itemTypes[attrs.ItemType.Label()]++
		}
		if attrs.Color != "" && attrs.Color != models.NotAvailable {
			colors[attrs.Color]++
		}
		for _, tag := range attrs.StyleTags {
			if tag != "" && tag != models.NotAvailable {
				tags[tag]++
			}
		}
	}

	insights.ItemTypes = rankCounts(itemTypes)
	insights.Colors = rankCounts(colors)
	insights.StyleTags = rankCounts(tags)

	if profile != nil {
		for _, style := range profile.PreferredStyles {
			if _, ok := tags[strings.TrimSpace(style)]; ok {
				insights.PreferredMatches = append(insights.PreferredMatches, style)
			}
		}
	}

	return insights
}

func rankCounts(counts map[string]int) []models.CountEntry {
	entries := make([]models.CountEntry, 0, len(counts))
	for label, count := range counts {
		entries = append(entries, models.CountEntry{Label: label, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Label < entries[j].Label
	})
	return entries
}
