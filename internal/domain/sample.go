package domain

// IllustrativeChart returns the fixed sample chart shown when nothing could
// be computed. Every call returns a fresh slice.
func IllustrativeChart() []PlanetPlacement {
	return []PlanetPlacement{
		{Name: string(Sun), Sign: "Leo", House: "5"},
		{Name: string(Moon), Sign: "Cancer", House: "4"},
		{Name: string(Mercury), Sign: "Virgo", House: "6"},
		{Name: string(Venus), Sign: "Libra", House: "7"},
		{Name: string(Mars), Sign: "Aries", House: "1"},
		{Name: string(Jupiter), Sign: "Sagittarius", House: "9"},
		{Name: string(Saturn), Sign: "Capricorn", House: "10"},
		{Name: string(Ascendant), Sign: "Aries", House: "1"},
	}
}
