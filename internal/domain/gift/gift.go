package gift

// Gift is a marketplace listing. The natural key is the string id the
// listings were imported with, not the Mongo object id.
type Gift struct {
	ID          string  `bson:"id" json:"id"`
	Name        string  `bson:"name" json:"name"`
	Category    string  `bson:"category" json:"category"`
	Condition   string  `bson:"condition" json:"condition"`
	PostedBy    string  `bson:"posted_by" json:"posted_by"`
	Zipcode     string  `bson:"zipcode" json:"zipcode"`
	AgeDays     int     `bson:"age_days" json:"age_days"`
	AgeYears    float64 `bson:"age_years" json:"age_years"`
	Description string  `bson:"description" json:"description"`
	Image       string  `bson:"image" json:"image"`
	DateAdded   int64   `bson:"date_added" json:"date_added"`
}

// SearchFilter narrows a gift search. Zero values mean "not filtered".
type SearchFilter struct {
	Name      string
	Category  string
	Condition string
	// MaxAgeYears caps age_years; zero disables the cap.
	MaxAgeYears float64
}
