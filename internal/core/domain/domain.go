package domain

// Language tags the pipeline branches on.
const (
	LanguageEnglish = "en"
	LanguageArabic  = "ar"
)

// Stub outputs reserved for the candidate and sentiment classifiers.
const (
	CandidateUnclassified = 0
	SentimentUnclassified = 0
)

// ClassificationResult is the record returned by /api and appended to the output log.
// Nil pointers serialize as JSON null and as empty CSV fields.
type ClassificationResult struct {
	OriginalTweet   *string `json:"OriginalTweet"`
	ClassifiedTweet *string `json:"ClassifiedTweet"`
	Language        *string `json:"Language"`
	Relevance       int     `json:"Relevance"`
	Candidate       int     `json:"Candidate"`
	Sentiment       int     `json:"Sentiment"`
}

// StringPtr returns a pointer to a copy of s.
func StringPtr(s string) *string {
	return &s
}

// Deref returns the pointed-to string or "" for nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
