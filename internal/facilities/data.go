package facilities

const polyclinicHours = "Mon-Fri: 8:00am - 1:00pm, Sat: 8:00am - 12:30pm"

var polyclinics = []Facility{
	{Name: "Ang Mo Kio Polyclinic", Kind: KindPolyclinic, Latitude: 1.3765, Longitude: 103.8492, Address: "723 Ang Mo Kio Ave 8, Singapore 560723", Hours: polyclinicHours, Phone: "+65 6355 3000"},
	{Name: "Bedok Polyclinic", Kind: KindPolyclinic, Latitude: 1.3244, Longitude: 103.9297, Address: "11 Bedok North St 1, Singapore 469662", Hours: polyclinicHours, Phone: "+65 6443 6969"},
	{Name: "Bukit Batok Polyclinic", Kind: KindPolyclinic, Latitude: 1.3481, Longitude: 103.7543, Address: "50 Bukit Batok West Ave 3, Singapore 659164", Hours: polyclinicHours, Phone: "+65 6563 2233"},
	{Name: "Bukit Merah Polyclinic", Kind: KindPolyclinic, Latitude: 1.2863, Longitude: 103.8022, Address: "163 Bukit Merah Central, Singapore 150163", Hours: polyclinicHours, Phone: "+65 6274 6111"},
	{Name: "Choa Chu Kang Polyclinic", Kind: KindPolyclinic, Latitude: 1.384, Longitude: 103.745, Address: "2 Teck Whye Crescent, Singapore 688846", Hours: polyclinicHours, Phone: "+65 6769 3911"},
	{Name: "Clementi Polyclinic", Kind: KindPolyclinic, Latitude: 1.3151, Longitude: 103.7642, Address: "451 Clementi Ave 3, Singapore 120451", Hours: polyclinicHours, Phone: "+65 6777 2646"},
	{Name: "Geylang Polyclinic", Kind: KindPolyclinic, Latitude: 1.3154, Longitude: 103.8876, Address: "21 Geylang East Central, Singapore 389707", Hours: polyclinicHours, Phone: "+65 6746 4766"},
	{Name: "Hougang Polyclinic", Kind: KindPolyclinic, Latitude: 1.3721, Longitude: 103.8942, Address: "89 Hougang Ave 4, Singapore 538829", Hours: polyclinicHours, Phone: "+65 6386 5500"},
	{Name: "Jurong Polyclinic", Kind: KindPolyclinic, Latitude: 1.3356, Longitude: 103.7044, Address: "190 Jurong East Ave 1, Singapore 609788", Hours: polyclinicHours, Phone: "+65 6665 8600"},
	{Name: "Marine Parade Polyclinic", Kind: KindPolyclinic, Latitude: 1.3031, Longitude: 103.9075, Address: "80 Marine Parade Central, Singapore 440080", Hours: polyclinicHours, Phone: "+65 6444 6000"},
	{Name: "Outram Polyclinic", Kind: KindPolyclinic, Latitude: 1.2795, Longitude: 103.8357, Address: "3 Second Hospital Ave, Singapore 168937", Hours: polyclinicHours, Phone: "+65 6321 4355"},
	{Name: "Pasir Ris Polyclinic", Kind: KindPolyclinic, Latitude: 1.3732, Longitude: 103.9457, Address: "1 Pasir Ris Dr 4, Singapore 519457", Hours: polyclinicHours, Phone: "+65 6585 5400"},
	{Name: "Punggol Polyclinic", Kind: KindPolyclinic, Latitude: 1.4016, Longitude: 103.9089, Address: "681 Punggol Dr, Singapore 820681", Hours: polyclinicHours, Phone: "+65 6421 4666"},
	{Name: "Queenstown Polyclinic", Kind: KindPolyclinic, Latitude: 1.2949, Longitude: 103.8013, Address: "580 Stirling Rd, Singapore 148958", Hours: polyclinicHours, Phone: "+65 6471 4533"},
	{Name: "Sengkang Polyclinic", Kind: KindPolyclinic, Latitude: 1.3917, Longitude: 103.893, Address: "2 Sengkang Square, Singapore 545025", Hours: polyclinicHours, Phone: "+65 6325 7300"},
	{Name: "Tampines Polyclinic", Kind: KindPolyclinic, Latitude: 1.3492, Longitude: 103.9458, Address: "1 Tampines St 41, Singapore 529203", Hours: polyclinicHours, Phone: "+65 6788 0833"},
	{Name: "Toa Payoh Polyclinic", Kind: KindPolyclinic, Latitude: 1.3324, Longitude: 103.8496, Address: "2003 Toa Payoh Lor 8, Singapore 319260", Hours: polyclinicHours, Phone: "+65 6354 7666"},
	{Name: "Woodlands Polyclinic", Kind: KindPolyclinic, Latitude: 1.4323, Longitude: 103.7863, Address: "10 Woodlands St 31, Singapore 738579", Hours: polyclinicHours, Phone: "+65 6363 8811"},
	{Name: "Yishun Polyclinic", Kind: KindPolyclinic, Latitude: 1.4296, Longitude: 103.8355, Address: "2 Yishun Ave 9, Singapore 768898", Hours: polyclinicHours, Phone: "+65 6753 5228"},
}

var privateHospitals = []Facility{
	{Name: "Mount Elizabeth Hospital", Kind: KindPrivateHospital, Latitude: 1.3052, Longitude: 103.835, Address: "3 Mount Elizabeth, Singapore 228510", Hours: "24 hours", Phone: "+65 6737 2666"},
	{Name: "Gleneagles Hospital", Kind: KindPrivateHospital, Latitude: 1.3074, Longitude: 103.8209, Address: "6A Napier Road, Singapore 258500", Hours: "24 hours", Phone: "+65 6473 7222"},
	{Name: "Raffles Hospital", Kind: KindPrivateHospital, Latitude: 1.3088, Longitude: 103.8567, Address: "585 North Bridge Rd, Singapore 188770", Hours: "24 hours", Phone: "+65 6311 1111"},
	{Name: "Mount Alvernia Hospital", Kind: KindPrivateHospital, Latitude: 1.3409, Longitude: 103.8378, Address: "820 Thomson Road, Singapore 574623", Hours: "24 hours", Phone: "+65 6347 6688"},
	{Name: "Parkway East Hospital", Kind: KindPrivateHospital, Latitude: 1.3142, Longitude: 103.9144, Address: "321 Joo Chiat Pl, Singapore 427990", Hours: "24 hours", Phone: "+65 6344 7588"},
	{Name: "Farrer Park Hospital", Kind: KindPrivateHospital, Latitude: 1.3125, Longitude: 103.8521, Address: "1 Farrer Park Station Rd, Singapore 217562", Hours: "24 hours", Phone: "+65 6363 1818"},
	{Name: "Thomson Medical Centre", Kind: KindPrivateHospital, Latitude: 1.3196, Longitude: 103.8431, Address: "339 Thomson Rd, Singapore 307677", Hours: "24 hours", Phone: "+65 6250 2222"},
	{Name: "Mount Elizabeth Novena Hospital", Kind: KindPrivateHospital, Latitude: 1.3204, Longitude: 103.8438, Address: "38 Irrawaddy Road, Singapore 329563", Hours: "24 hours", Phone: "+65 6933 0000"},
	{Name: "East Shore Hospital", Kind: KindPrivateHospital, Latitude: 1.3141, Longitude: 103.9142, Address: "319 Joo Chiat Pl, Singapore 427989", Hours: "24 hours", Phone: "+65 6344 7588"},
	{Name: "Bright Vision Hospital", Kind: KindPrivateHospital, Latitude: 1.3713, Longitude: 103.8883, Address: "5 Lorong Napiri, Singapore 547530", Hours: "24 hours", Phone: "+65 6248 5755"},
}

var publicHospitals = []Facility{
	{Name: "Singapore General Hospital", Kind: KindPublicHospital, Latitude: 1.2789, Longitude: 103.8358, Address: "Outram Rd, Singapore 169608", Hours: "24 hours", Phone: "+65 6222 3322"},
	{Name: "Tan Tock Seng Hospital", Kind: KindPublicHospital, Latitude: 1.3214, Longitude: 103.8454, Address: "11 Jln Tan Tock Seng, Singapore 308433", Hours: "24 hours", Phone: "+65 6256 6011"},
	{Name: "National University Hospital", Kind: KindPublicHospital, Latitude: 1.2932, Longitude: 103.7831, Address: "5 Lower Kent Ridge Rd, Singapore 119074", Hours: "24 hours", Phone: "+65 6779 5555"},
	{Name: "Changi General Hospital", Kind: KindPublicHospital, Latitude: 1.3416, Longitude: 103.9462, Address: "2 Simei Street 3, Singapore 529889", Hours: "24 hours", Phone: "+65 6788 8833"},
	{Name: "Khoo Teck Puat Hospital", Kind: KindPublicHospital, Latitude: 1.4245, Longitude: 103.8383, Address: "90 Yishun Central, Singapore 768828", Hours: "24 hours", Phone: "+65 6555 8000"},
	{Name: "Ng Teng Fong General Hospital", Kind: KindPublicHospital, Latitude: 1.333, Longitude: 103.743, Address: "1 Jurong East Street 21, Singapore 609606", Hours: "24 hours", Phone: "+65 6716 2000"},
	{Name: "Sengkang General Hospital", Kind: KindPublicHospital, Latitude: 1.3916, Longitude: 103.8915, Address: "110 Sengkang E Way, Singapore 544886", Hours: "24 hours", Phone: "+65 6930 6000"},
	{Name: "KK Women's and Children's Hospital", Kind: KindPublicHospital, Latitude: 1.3146, Longitude: 103.8451, Address: "100 Bukit Timah Road, Singapore 229899", Hours: "24 hours", Phone: "+65 6225 5554"},
}

var services = []string{
	"Doctor Consultation",
	"Health Plan Discussion",
	"Vaccination",
	"Child Immunization",
	"Diabetic Eye Screening",
	"Diabetic Foot Screening",
	"Dental Services",
}
