package zone

// Directory is the published JAKIM zone table: one representative city per
// zone code, covering every Malaysian state and federal territory. Reference
// data — never mutated at runtime.
var Directory = []Location{
	// Johor
	{City: "Pulau Aur", State: "Johor", Latitude: 2.4500, Longitude: 104.5167, Zone: "JHR01"},
	{City: "Johor Bahru", State: "Johor", Latitude: 1.4927, Longitude: 103.7414, Zone: "JHR02"},
	{City: "Kluang", State: "Johor", Latitude: 2.0336, Longitude: 103.3296, Zone: "JHR03"},
	{City: "Batu Pahat", State: "Johor", Latitude: 1.8548, Longitude: 102.9325, Zone: "JHR04"},

	// Kedah
	{City: "Alor Setar", State: "Kedah", Latitude: 6.1248, Longitude: 100.3678, Zone: "KDH01"},
	{City: "Sungai Petani", State: "Kedah", Latitude: 5.6470, Longitude: 100.4877, Zone: "KDH02"},
	{City: "Sik", State: "Kedah", Latitude: 5.8160, Longitude: 100.7360, Zone: "KDH03"},
	{City: "Baling", State: "Kedah", Latitude: 5.6760, Longitude: 100.9180, Zone: "KDH04"},
	{City: "Kulim", State: "Kedah", Latitude: 5.3650, Longitude: 100.5610, Zone: "KDH05"},
	{City: "Langkawi", State: "Kedah", Latitude: 6.3500, Longitude: 99.8000, Zone: "KDH06"},
	{City: "Gunung Jerai", State: "Kedah", Latitude: 5.7896, Longitude: 100.4336, Zone: "KDH07"},

	// Kelantan
	{City: "Kota Bharu", State: "Kelantan", Latitude: 6.1254, Longitude: 102.2381, Zone: "KTN01"},
	{City: "Gua Musang", State: "Kelantan", Latitude: 4.8823, Longitude: 101.9644, Zone: "KTN03"},

	// Melaka
	{City: "Melaka", State: "Melaka", Latitude: 2.1896, Longitude: 102.2501, Zone: "MLK01"},

	// Negeri Sembilan
	{City: "Tampin", State: "Negeri Sembilan", Latitude: 2.4701, Longitude: 102.2297, Zone: "NGS01"},
	{City: "Seremban", State: "Negeri Sembilan", Latitude: 2.7297, Longitude: 101.9381, Zone: "NGS02"},
	{City: "Port Dickson", State: "Negeri Sembilan", Latitude: 2.5228, Longitude: 101.7962, Zone: "NGS03"},

	// Pahang
	{City: "Pulau Tioman", State: "Pahang", Latitude: 2.7900, Longitude: 104.1700, Zone: "PHG01"},
	{City: "Kuantan", State: "Pahang", Latitude: 3.8077, Longitude: 103.3260, Zone: "PHG02"},
	{City: "Temerloh", State: "Pahang", Latitude: 3.4506, Longitude: 102.4176, Zone: "PHG03"},
	{City: "Bentong", State: "Pahang", Latitude: 3.5215, Longitude: 101.9082, Zone: "PHG04"},
	{City: "Janda Baik", State: "Pahang", Latitude: 3.3333, Longitude: 101.8667, Zone: "PHG05"},
	{City: "Cameron Highlands", State: "Pahang", Latitude: 4.4706, Longitude: 101.3768, Zone: "PHG06"},

	// Perak
	{City: "Tapah", State: "Perak", Latitude: 4.1986, Longitude: 101.2616, Zone: "PRK01"},
	{City: "Ipoh", State: "Perak", Latitude: 4.5975, Longitude: 101.0901, Zone: "PRK02"},
	{City: "Gerik", State: "Perak", Latitude: 5.4215, Longitude: 101.1283, Zone: "PRK03"},
	{City: "Temengor", State: "Perak", Latitude: 5.4058, Longitude: 101.3550, Zone: "PRK04"},
	{City: "Teluk Intan", State: "Perak", Latitude: 4.0259, Longitude: 101.0213, Zone: "PRK05"},
	{City: "Taiping", State: "Perak", Latitude: 4.8500, Longitude: 100.7333, Zone: "PRK06"},
	{City: "Bukit Larut", State: "Perak", Latitude: 4.8636, Longitude: 100.7994, Zone: "PRK07"},

	// Perlis
	{City: "Kangar", State: "Perlis", Latitude: 6.4414, Longitude: 100.1986, Zone: "PLS01"},

	// Pulau Pinang
	{City: "George Town", State: "Pulau Pinang", Latitude: 5.4141, Longitude: 100.3288, Zone: "PNG01"},

	// Sabah
	{City: "Sandakan", State: "Sabah", Latitude: 5.8402, Longitude: 118.1179, Zone: "SBH01"},
	{City: "Beluran", State: "Sabah", Latitude: 5.9065, Longitude: 117.5451, Zone: "SBH02"},
	{City: "Lahad Datu", State: "Sabah", Latitude: 5.0268, Longitude: 118.3270, Zone: "SBH03"},
	{City: "Tawau", State: "Sabah", Latitude: 4.2448, Longitude: 117.8911, Zone: "SBH04"},
	{City: "Kudat", State: "Sabah", Latitude: 6.8837, Longitude: 116.8477, Zone: "SBH05"},
	{City: "Gunung Kinabalu", State: "Sabah", Latitude: 6.0754, Longitude: 116.5582, Zone: "SBH06"},
	{City: "Kota Kinabalu", State: "Sabah", Latitude: 5.9804, Longitude: 116.0735, Zone: "SBH07"},
	{City: "Keningau", State: "Sabah", Latitude: 5.3378, Longitude: 116.1602, Zone: "SBH08"},
	{City: "Beaufort", State: "Sabah", Latitude: 5.3476, Longitude: 115.7454, Zone: "SBH09"},

	// Sarawak
	{City: "Limbang", State: "Sarawak", Latitude: 4.7500, Longitude: 115.0000, Zone: "SWK01"},
	{City: "Miri", State: "Sarawak", Latitude: 4.3995, Longitude: 113.9914, Zone: "SWK02"},
	{City: "Bintulu", State: "Sarawak", Latitude: 3.1714, Longitude: 113.0419, Zone: "SWK03"},
	{City: "Sibu", State: "Sarawak", Latitude: 2.2870, Longitude: 111.8305, Zone: "SWK04"},
	{City: "Sarikei", State: "Sarawak", Latitude: 2.1266, Longitude: 111.5180, Zone: "SWK05"},
	{City: "Sri Aman", State: "Sarawak", Latitude: 1.2375, Longitude: 111.4621, Zone: "SWK06"},
	{City: "Serian", State: "Sarawak", Latitude: 1.1667, Longitude: 110.5667, Zone: "SWK07"},
	{City: "Kuching", State: "Sarawak", Latitude: 1.5533, Longitude: 110.3592, Zone: "SWK08"},
	{City: "Kabong", State: "Sarawak", Latitude: 1.7833, Longitude: 111.1667, Zone: "SWK09"},

	// Selangor
	{City: "Shah Alam", State: "Selangor", Latitude: 3.0733, Longitude: 101.5185, Zone: "SGR01"},
	{City: "Kuala Selangor", State: "Selangor", Latitude: 3.3397, Longitude: 101.2502, Zone: "SGR02"},
	{City: "Klang", State: "Selangor", Latitude: 3.0449, Longitude: 101.4456, Zone: "SGR03"},

	// Terengganu
	{City: "Kuala Terengganu", State: "Terengganu", Latitude: 5.3296, Longitude: 103.1370, Zone: "TRG01"},
	{City: "Besut", State: "Terengganu", Latitude: 5.8333, Longitude: 102.5500, Zone: "TRG02"},
	{City: "Hulu Terengganu", State: "Terengganu", Latitude: 5.0722, Longitude: 102.9743, Zone: "TRG03"},
	{City: "Dungun", State: "Terengganu", Latitude: 4.7566, Longitude: 103.4245, Zone: "TRG04"},

	// Wilayah Persekutuan
	{City: "Kuala Lumpur", State: "Wilayah Persekutuan", Latitude: 3.1390, Longitude: 101.6869, Zone: "WLY01"},
	{City: "Labuan", State: "Wilayah Persekutuan", Latitude: 5.2831, Longitude: 115.2308, Zone: "WLY02"},
}
