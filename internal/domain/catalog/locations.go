package catalog

import "sort"

// statesAndDistricts is the Malaysian administrative hierarchy used for
// posting locations. District membership is validated against this table.
var statesAndDistricts = map[string][]string{
	"Johor":    {"Johor Bahru", "Batu Pahat", "Muar", "Kluang", "Segamat", "Pontian", "Kota Tinggi", "Mersing", "Kulai", "Tangkak"},
	"Kedah":    {"Kota Setar", "Kuala Muda", "Kulim", "Langkawi", "Yan", "Sik", "Padang Terap", "Pendang", "Bandar Baharu", "Baling", "Kubang Pasu"},
	"Kelantan": {"Kota Bharu", "Pasir Mas", "Tumpat", "Pasir Puteh", "Bachok", "Kuala Krai", "Machang", "Tanah Merah", "Jeli", "Gua Musang"},
	"Melaka":   {"Melaka Tengah", "Alor Gajah", "Jasin"},
	"Negeri Sembilan": {"Seremban", "Port Dickson", "Rembau", "Tampin", "Jempol", "Kuala Pilah", "Jelebu"},
	"Pahang":         {"Kuantan", "Temerloh", "Bentong", "Maran", "Rompin", "Pekan", "Bera", "Raub", "Jerantut", "Lipis", "Cameron Highlands"},
	"Perak":          {"Kinta", "Larut, Matang dan Selama", "Hilir Perak", "Manjung", "Kerian", "Batang Padang", "Kuala Kangsar", "Hulu Perak", "Perak Tengah", "Kampar"},
	"Perlis":         {"Kangar"},
	"Pulau Pinang":   {"Timur Laut", "Barat Daya", "Seberang Perai Utara", "Seberang Perai Tengah", "Seberang Perai Selatan"},
	"Sabah":          {"Kota Kinabalu", "Sandakan", "Tawau", "Lahad Datu", "Keningau", "Kinabatangan", "Semporna", "Papar", "Penampang", "Kudat"},
	"Sarawak":        {"Kuching", "Miri", "Sibu", "Bintulu", "Limbang", "Sarikei", "Kapit", "Sri Aman", "Samarahan", "Betong"},
	"Selangor":       {"Petaling", "Hulu Langat", "Klang", "Gombak", "Kuala Langat", "Sepang", "Kuala Selangor", "Hulu Selangor", "Sabak Bernam"},
	"Terengganu":     {"Kuala Terengganu", "Kemaman", "Dungun", "Marang", "Hulu Terengganu", "Besut", "Setiu", "Kuala Nerus"},
	"Wilayah Persekutuan Kuala Lumpur": {"Kuala Lumpur"},
	"Wilayah Persekutuan Labuan":       {"Labuan"},
	"Wilayah Persekutuan Putrajaya":    {"Putrajaya"},
}

// States returns every known state name, sorted.
func States() []string {
	out := make([]string, 0, len(statesAndDistricts))
	for s := range statesAndDistricts {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Districts returns the district set of a state, or nil for an unknown state.
func Districts(state string) []string {
	ds, ok := statesAndDistricts[state]
	if !ok {
		return nil
	}
	out := make([]string, len(ds))
	copy(out, ds)
	return out
}

// ValidLocation reports whether district belongs to state.
func ValidLocation(state, district string) bool {
	for _, d := range statesAndDistricts[state] {
		if d == district {
			return true
		}
	}
	return false
}
