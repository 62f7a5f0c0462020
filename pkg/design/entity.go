package design

// Building is a massing volume placed on the site.
type Building struct {
	ID            int        `json:"id"`
	Name          string     `json:"name"`
	Position      Position   `json:"position"`
	Dimensions    Dimensions `json:"dimensions"`
	Style         string     `json:"style"`
	Floors        int        `json:"floors"`
	RoofType      string     `json:"roofType"`
	HasSubVolumes bool       `json:"hasSubVolumes"`
}

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type Dimensions struct {
	Width  float64 `json:"width"`
	Length float64 `json:"length"`
	Height float64 `json:"height"`
}

// Project groups buildings. Dates are ISO calendar dates.
type Project struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
	BuildingCount int    `json:"building_count"`
}

var sampleBuildings = []Building{
	{
		ID: 1, Name: "Tower A",
		Position:   Position{X: 0, Y: 0, Z: 0},
		Dimensions: Dimensions{Width: 20, Length: 30, Height: 50},
		Style:      "modern", Floors: 12, RoofType: "flat", HasSubVolumes: true,
	},
	{
		ID: 2, Name: "Office Building",
		Position:   Position{X: 50, Y: 0, Z: 50},
		Dimensions: Dimensions{Width: 40, Length: 40, Height: 30},
		Style:      "corporate", Floors: 8, RoofType: "flat", HasSubVolumes: false,
	},
	{
		ID: 3, Name: "Residential Complex",
		Position:   Position{X: -50, Y: 0, Z: -30},
		Dimensions: Dimensions{Width: 25, Length: 35, Height: 20},
		Style:      "residential", Floors: 6, RoofType: "pitched", HasSubVolumes: true,
	},
	{
		ID: 4, Name: "Shopping Center",
		Position:   Position{X: -30, Y: 0, Z: 40},
		Dimensions: Dimensions{Width: 50, Length: 60, Height: 15},
		Style:      "modern", Floors: 3, RoofType: "flat", HasSubVolumes: true,
	},
}

var sampleProjects = []Project{
	{ID: 1, Name: "Downtown Development", CreatedAt: "2023-01-15", UpdatedAt: "2023-03-20", BuildingCount: 5},
	{ID: 2, Name: "Residential Complex", CreatedAt: "2023-02-10", UpdatedAt: "2023-03-18", BuildingCount: 12},
}
