package dateutil

import "fmt"

// Indonesian calendar names, matching the id-ID rendering the app has always
// used.
var (
	weekdayNames = [...]string{"Minggu", "Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu"}
	monthNames   = [...]string{"Januari", "Februari", "Maret", "April", "Mei", "Juni", "Juli", "Agustus", "September", "Oktober", "November", "Desember"}
	monthAbbrevs = [...]string{"Jan", "Feb", "Mar", "Apr", "Mei", "Jun", "Jul", "Agu", "Sep", "Okt", "Nov", "Des"}
)

// FormatLong renders a day with full weekday and month names, prefixed with
// "Hari Ini — " when the day is today.
func FormatLong(d, today Day) string {
	s := fmt.Sprintf("%s, %d %s %d", weekdayNames[d.Weekday()], d.DayOfMonth(), monthNames[d.Month()-1], d.Year())
	if d.Equal(today) {
		return "Hari Ini — " + s
	}

	return s
}

// FormatShort renders a day as "02 Jan 2006".
func FormatShort(d Day) string {
	return fmt.Sprintf("%02d %s %d", d.DayOfMonth(), monthAbbrevs[d.Month()-1], d.Year())
}
