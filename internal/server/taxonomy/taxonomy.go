// Package taxonomy holds the static filter data used to populate and
// validate category and location selections: categories with their
// subcategories, provinces with their regencies, and the item condition
// enum. The data is hand-authored and changes only with a release.
package taxonomy

// Conditions is the enumerated physical state of a listed item.
var Conditions = []string{"Baru", "Hampir Baru", "Bekas", "Ada Cacat"}

// Categories maps each main category to its subcategories.
var Categories = map[string][]string{
	"Elektronik": {
		"Handphone & Tablet", "Komputer & Laptop", "TV & Audio", "Kamera", "Aksesoris Elektronik",
	},
	"Kendaraan": {
		"Mobil", "Motor", "Sepeda", "Aksesoris Kendaraan",
	},
	"Properti": {
		"Rumah", "Apartemen", "Tanah", "Kost & Kontrakan",
	},
	"Rumah Tangga": {
		"Furnitur", "Peralatan Dapur", "Dekorasi", "Peralatan Kebersihan",
	},
	"Fashion": {
		"Pakaian Pria", "Pakaian Wanita", "Sepatu", "Tas", "Jam & Aksesoris",
	},
	"Hobi & Olahraga": {
		"Alat Musik", "Olahraga", "Koleksi", "Buku", "Mainan & Games",
	},
	"Keperluan Bayi & Anak": {
		"Pakaian Anak", "Perlengkapan Bayi", "Mainan Anak",
	},
	"Lainnya": nil,
}

// Locations maps each province to its regencies/cities.
var Locations = map[string][]string{
	"DKI Jakarta": {
		"Jakarta Pusat", "Jakarta Utara", "Jakarta Barat", "Jakarta Selatan", "Jakarta Timur", "Kepulauan Seribu",
	},
	"Jawa Barat": {
		"Bandung", "Bekasi", "Bogor", "Depok", "Cimahi", "Sukabumi", "Tasikmalaya", "Cirebon",
	},
	"Jawa Tengah": {
		"Semarang", "Surakarta", "Magelang", "Pekalongan", "Salatiga", "Tegal",
	},
	"DI Yogyakarta": {
		"Yogyakarta", "Sleman", "Bantul", "Kulon Progo", "Gunungkidul",
	},
	"Jawa Timur": {
		"Surabaya", "Malang", "Kediri", "Madiun", "Mojokerto", "Pasuruan", "Probolinggo", "Batu",
	},
	"Banten": {
		"Tangerang", "Tangerang Selatan", "Serang", "Cilegon",
	},
	"Bali": {
		"Denpasar", "Badung", "Gianyar", "Tabanan", "Buleleng",
	},
	"Sumatera Utara": {
		"Medan", "Binjai", "Pematangsiantar", "Tebing Tinggi",
	},
	"Sumatera Selatan": {
		"Palembang", "Prabumulih", "Lubuklinggau",
	},
	"Sulawesi Selatan": {
		"Makassar", "Parepare", "Palopo",
	},
}

// ValidCondition reports whether c is one of the enumerated conditions.
func ValidCondition(c string) bool {
	for _, v := range Conditions {
		if v == c {
			return true
		}
	}
	return false
}

// ValidCategory reports whether cat is a known main category.
func ValidCategory(cat string) bool {
	_, ok := Categories[cat]
	return ok
}

// ValidSubcategory reports whether sub belongs to cat's subcategory list.
// A subcategory is only meaningful when its category is set.
func ValidSubcategory(cat, sub string) bool {
	subs, ok := Categories[cat]
	if !ok {
		return false
	}
	for _, v := range subs {
		if v == sub {
			return true
		}
	}
	return false
}

// ValidProvince reports whether prov is a known province.
func ValidProvince(prov string) bool {
	_, ok := Locations[prov]
	return ok
}

// ValidRegency reports whether reg belongs to prov's regency list.
// A regency is only meaningful when its province is set.
func ValidRegency(prov, reg string) bool {
	regs, ok := Locations[prov]
	if !ok {
		return false
	}
	for _, v := range regs {
		if v == reg {
			return true
		}
	}
	return false
}
