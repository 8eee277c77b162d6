package catalog

import "sort"

// jobGrades maps a service scheme title to the grades it may be posted at.
// Grade options depend on the chosen title.
var jobGrades = map[string][]string{
	"Pegawai Tadbir":                     {"N41", "N44", "N48", "N52"},
	"Pegawai Tadbir dan Diplomatik":      {"M41", "M44", "M48", "M52"},
	"Penolong Pegawai Tadbir":            {"N29", "N32", "N36"},
	"Pembantu Tadbir (Perkeranian/Operasi)": {"N19", "N22", "N26"},
	"Pembantu Operasi":                   {"N11", "N14"},
	"Pegawai Perkhidmatan Pendidikan":    {"DG41", "DG44", "DG48", "DG52"},
	"Pegawai Perubatan":                  {"UD41", "UD44", "UD48"},
	"Pegawai Farmasi":                    {"UF41", "UF44", "UF48"},
	"Jururawat":                          {"U29", "U32", "U36"},
	"Penolong Pegawai Perubatan":         {"U29", "U32"},
	"Pegawai Teknologi Maklumat":         {"F41", "F44", "F48"},
	"Penolong Pegawai Teknologi Maklumat": {"FA29", "FA32"},
	"Juruteknik Komputer":                {"FT19", "FT22"},
	"Akauntan":                           {"WA41", "WA44", "WA48"},
	"Penolong Akauntan":                  {"W29", "W32"},
	"Jurutera":                           {"J41", "J44", "J48"},
	"Penolong Jurutera":                  {"JA29", "JA32"},
	"Pegawai Penguat Kuasa":              {"N41", "N44"},
	"Pembantu Penguat Kuasa":             {"N19", "N22"},
	"Pegawai Hidupan Liar":               {"G41", "G44"},
}

// JobTitles returns every known title, sorted.
func JobTitles() []string {
	out := make([]string, 0, len(jobGrades))
	for t := range jobGrades {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Grades returns the grade options for a title, or nil for an unknown title.
func Grades(title string) []string {
	gs, ok := jobGrades[title]
	if !ok {
		return nil
	}
	out := make([]string, len(gs))
	copy(out, gs)
	return out
}

// ValidJobTitle reports whether title is in the catalog.
func ValidJobTitle(title string) bool {
	_, ok := jobGrades[title]
	return ok
}

// ValidGrade reports whether grade is offered for title.
func ValidGrade(title, grade string) bool {
	for _, g := range jobGrades[title] {
		if g == grade {
			return true
		}
	}
	return false
}
