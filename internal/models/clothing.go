package models

import "strings"

// NotAvailable is the sentinel the analyzer uses for every field of a non-clothing image.
const NotAvailable = "N/A"

type ItemType string

const (
	ItemTypeTop       ItemType = "top"
	ItemTypeBottom    ItemType = "bottom"
	ItemTypeOuter     ItemType = "outer"
	ItemTypeShoes     ItemType = "shoes"
	ItemTypeAccessory ItemType = "accessory"
	ItemTypeUnknown   ItemType = NotAvailable
)

var itemTypeAliases = map[string]ItemType{
	"top":       ItemTypeTop,
	"상의":        ItemTypeTop,
	"bottom":    ItemTypeBottom,
	"하의":        ItemTypeBottom,
	"outer":     ItemTypeOuter,
	"outerwear": ItemTypeOuter,
	"아우터":       ItemTypeOuter,
	"shoes":     ItemTypeShoes,
	"신발":        ItemTypeShoes,
	"accessory": ItemTypeAccessory,
	"액세서리":      ItemTypeAccessory,
}

var itemTypeLabels = map[ItemType]string{
	ItemTypeTop:       "상의",
	ItemTypeBottom:    "하의",
	ItemTypeOuter:     "아우터",
	ItemTypeShoes:     "신발",
	ItemTypeAccessory: "액세서리",
}

// ParseItemType maps the model's Korean or English item names onto ItemType.
// Anything unrecognized becomes ItemTypeUnknown.
func ParseItemType(raw string) ItemType {
	if t, ok := itemTypeAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return t
	}
	return ItemTypeUnknown
}

func (t ItemType) Label() string {
	if label, ok := itemTypeLabels[t]; ok {
		return label
	}
	return NotAvailable
}

type ClothingAttributes struct {
	ItemType  ItemType `json:"item_type"`
	Category  string   `json:"category"`
	Color     string   `json:"color"`
	Pattern   string   `json:"pattern"`
	StyleTags []string `json:"style_tags"`
}

// NotClothing reports whether the analyzer marked the image as non-clothing.
func (c ClothingAttributes) NotClothing() bool {
	return c.ItemType == ItemTypeUnknown &&
		c.Category == NotAvailable &&
		c.Color == NotAvailable &&
		c.Pattern == NotAvailable
}
