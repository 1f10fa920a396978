package status

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PlaceholderIcon is used for keys without an explicit entry
const PlaceholderIcon = "circle-help"

// Metadata is the display metadata of a canonical status
type Metadata struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

var metadata = map[Key]Metadata{
	Unassigned:       {Label: "Unassigned", Icon: "circle-dashed"},
	Offered:          {Label: "Offered", Icon: "send"},
	Assigned:         {Label: "Assigned", Icon: "user-check"},
	InHouse:          {Label: "In House", Icon: "home"},
	EnRoute:          {Label: "En Route", Icon: "car"},
	Arrived:          {Label: "Arrived", Icon: "map-pin"},
	PassengerOnboard: {Label: "Passenger On Board", Icon: "users"},
	Completed:        {Label: "Completed", Icon: "check-circle"},
	Declined:         {Label: "Declined", Icon: "x-circle"},
	Cancelled:        {Label: "Cancelled", Icon: "ban"},
	NoShow:           {Label: "No Show", Icon: "user-x"},
	Quote:            {Label: "Quote", Icon: "file-text"},
	FarmOutOffered:   {Label: "Farm-Out Offered", Icon: "share"},
	FarmOutAssigned:  {Label: "Farm-Out Assigned", Icon: "handshake"},
	FarmOutDeclined:  {Label: "Farm-Out Declined", Icon: "share-off"},
	FarmOutCompleted: {Label: "Farm-Out Completed", Icon: "check-check"},
	FarmInAssigned:   {Label: "Farm-In Assigned", Icon: "download"},
}

// MetadataFor returns the label and icon of the key, keys without an entry get a title cased
// label and the placeholder icon
func MetadataFor(key Key) Metadata {
	if key == "" {
		return metadata[Unassigned]
	}

	if m, ok := metadata[key]; ok {
		return m
	}

	return Metadata{
		Label: cases.Title(language.English).String(strings.ReplaceAll(string(key), "_", " ")),
		Icon:  PlaceholderIcon,
	}
}
