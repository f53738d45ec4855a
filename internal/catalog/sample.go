package catalog

// SampleSource names the built-in catalog.
const SampleSource = "builtin:sample"

var sampleRecords = []Record{
	{ContentID: 1, Title: "Algebra Basics", Subject: "Math", Difficulty: Easy, Type: "Video"},
	{ContentID: 2, Title: "Advanced Geometry", Subject: "Math", Difficulty: Hard, Type: "Quiz"},
	{ContentID: 3, Title: "Human Body Systems", Subject: "Science", Difficulty: Medium, Type: "Text"},
	{ContentID: 4, Title: "World War II Overview", Subject: "History", Difficulty: Medium, Type: "Video"},
	{ContentID: 5, Title: "Photosynthesis Basics", Subject: "Science", Difficulty: Easy, Type: "Quiz"},
	{ContentID: 6, Title: "Linear Equations", Subject: "Math", Difficulty: Medium, Type: "Text"},
	{ContentID: 7, Title: "Cell Structure", Subject: "Science", Difficulty: Easy, Type: "Video"},
	{ContentID: 8, Title: "Indian Independence", Subject: "History", Difficulty: Hard, Type: "Text"},
	{ContentID: 9, Title: "Probability Intro", Subject: "Math", Difficulty: Medium, Type: "Video"},
	{ContentID: 10, Title: "Periodic Table", Subject: "Science", Difficulty: Medium, Type: "Quiz"},
	{ContentID: 11, Title: "Medieval India", Subject: "History", Difficulty: Easy, Type: "Text"},
	{ContentID: 12, Title: "Quadratic Equations", Subject: "Math", Difficulty: Hard, Type: "Video"},
	{ContentID: 13, Title: "Ecosystems", Subject: "Science", Difficulty: Hard, Type: "Text"},
	{ContentID: 14, Title: "Renaissance Art", Subject: "History", Difficulty: Medium, Type: "Video"},
	{ContentID: 15, Title: "Fractions & Decimals", Subject: "Math", Difficulty: Easy, Type: "Text"},
	{ContentID: 16, Title: "Genetics Basics", Subject: "Science", Difficulty: Medium, Type: "Video"},
	{ContentID: 17, Title: "Modern World Conflicts", Subject: "History", Difficulty: Hard, Type: "Quiz"},
	{ContentID: 18, Title: "Coordinate Geometry", Subject: "Math", Difficulty: Medium, Type: "Text"},
	{ContentID: 19, Title: "Acids and Bases", Subject: "Science", Difficulty: Easy, Type: "Quiz"},
	{ContentID: 20, Title: "Constitution of India", Subject: "History", Difficulty: Medium, Type: "Text"},
}

// Sample returns the built-in 20-record catalog. It cannot fail.
func Sample() *Catalog {
	c, err := New(sampleRecords, SampleSource)
	if err != nil {
		panic("catalog: invalid built-in sample: " + err.Error())
	}
	return c
}
