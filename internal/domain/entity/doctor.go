package entity

// Doctor is one entry of the static catalog collection. The catalog is
// owned by an external pipeline and read-only from this service.
type Doctor struct {
	SlNo             int    `bson:"sl_no" json:"sl_no"`
	Name             string `bson:"name" json:"name"`
	Age              int    `bson:"age" json:"age"`
	ShortDescription string `bson:"short_description" json:"short_description"`
	Specialization   string `bson:"specialization" json:"specialization"`
	Experience       int    `bson:"experience" json:"experience"`
	Gender           string `bson:"gender" json:"gender"`
	Rating           int    `bson:"rating" json:"rating"`
	Email            string `bson:"email" json:"email"`
}

// Match type labels attached to a doctor match result.
const (
	MatchTypeAI     = "AI Selected"
	MatchTypeRandom = "Random Selection"
)
