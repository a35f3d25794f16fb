package domain

import (
	"math"
	"strconv"
)

// Signs lists the twelve zodiac signs from 0° ecliptic longitude.
var Signs = []string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// sunSignByMonth is the sign in force at the start of each month, and
// sunSignCutoff the last day of that month still belonging to it.
var (
	sunSignByMonth = []string{
		"Capricorn", "Aquarius", "Pisces", "Aries", "Taurus", "Gemini",
		"Cancer", "Leo", "Virgo", "Libra", "Scorpio", "Sagittarius",
	}
	sunSignCutoff = []int{19, 18, 20, 19, 20, 20, 22, 22, 22, 22, 21, 21}
)

// SunSign estimates the Sun sign from the calendar date alone. A day past
// the month's cutoff selects the following sign.
func SunSign(month, day int) (string, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return "", false
	}
	if day > sunSignCutoff[month-1] {
		return sunSignByMonth[month%12], true
	}
	return sunSignByMonth[month-1], true
}

// SignIndex returns the position of sign in Signs, or -1.
func SignIndex(sign string) int {
	for i, s := range Signs {
		if s == sign {
			return i
		}
	}
	return -1
}

// IsSign reports whether s is one of the twelve sign names.
func IsSign(s string) bool {
	return SignIndex(s) >= 0
}

// NormalizeDegrees maps deg into [0, 360).
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// SignFromLongitude returns the sign index of an ecliptic longitude in degrees.
func SignFromLongitude(deg float64) int {
	return int(NormalizeDegrees(deg)/30) % 12
}

// WholeSignHouse returns the whole-sign house (1..12) of a body whose sign
// index is sign, given the Ascendant's sign index.
func WholeSignHouse(sign, ascSign int) int {
	return (sign-ascSign+12)%12 + 1
}

// HouseNumber formats a house number, or HouseUnknown when out of range.
func HouseNumber(n int) string {
	if n < 1 || n > 12 {
		return HouseUnknown
	}
	return strconv.Itoa(n)
}
