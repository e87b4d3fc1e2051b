// Package match scores how well a job seeker's profile fits a job
// posting, using TF-IDF weighted cosine similarity.
//
// HOW IT WORKS:
// Both texts (the profile and the job description) are tokenized into
// lowercase words. Each word gets a weight of term-frequency × inverse
// document frequency — common words that appear in every document score
// near zero, distinctive words score high. The two weight vectors are
// then compared with cosine similarity: 1.0 means identical term
// distributions, 0.0 means no shared vocabulary.
//
// The corpus for the IDF step is just the documents being compared. That
// is a small corpus, but it matches what the scoring is for: "of the
// words these texts use, which ones do they share, and how distinctive
// are they?" No external model, no network, deterministic output.
package match

import (
	"encoding/json"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/sakif/hirepro/internal/model"
)

// Score returns the similarity between a user profile and a job, in
// [0, 100]. Used at apply time to stamp a match score on the application.
func Score(user *model.User, job *model.Job) float64 {
	sims := Similarities(ProfileText(user), []string{JobText(job)})
	return round2(sims[0] * 100)
}

// RankedJob is a job annotated with its similarity score, for the
// recommendation listing.
type RankedJob struct {
	model.Job
	Score float64 `json:"score"`
}

// MarshalJSON splices the score into the job's own JSON. Without this,
// the embedded Job's marshaller would be promoted and the score field
// silently dropped from the output.
func (r RankedJob) MarshalJSON() ([]byte, error) {
	raw, err := json.Marshal(r.Job)
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	fields["score"] = r.Score
	return json.Marshal(fields)
}

// RankJobs scores every job against the user's profile and returns them
// sorted best-first. Jobs the profile shares no vocabulary with still
// appear, at score zero — the caller decides whether to cut them off.
func RankJobs(user *model.User, jobs []model.Job) []RankedJob {
	docs := make([]string, len(jobs))
	for i := range jobs {
		docs[i] = JobText(&jobs[i])
	}
	sims := Similarities(ProfileText(user), docs)

	ranked := make([]RankedJob, len(jobs))
	for i := range jobs {
		ranked[i] = RankedJob{Job: jobs[i], Score: round2(sims[i] * 100)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// ProfileText flattens the scoreable parts of a profile — skills,
// experience, projects, certifications — into one document.
func ProfileText(user *model.User) string {
	var parts []string
	parts = append(parts, user.Skills...)
	for _, exp := range user.Experience {
		parts = append(parts, exp.Position, exp.Description)
	}
	for _, proj := range user.Projects {
		parts = append(parts, proj.Name, proj.Description)
	}
	for _, cert := range user.Certifications {
		parts = append(parts, cert.Name)
	}
	return strings.Join(parts, " ")
}

// JobText flattens a job posting into one document: the title carries the
// most signal, then the description.
func JobText(job *model.Job) string {
	return job.Title + " " + job.Description
}

// Similarities computes the TF-IDF cosine similarity between the query
// document and each of the docs, over a shared vocabulary built from all
// of them. Returns one value in [0, 1] per doc.
func Similarities(query string, docs []string) []float64 {
	all := make([][]string, 0, len(docs)+1)
	all = append(all, tokenize(query))
	for _, d := range docs {
		all = append(all, tokenize(d))
	}

	idf := inverseDocFreq(all)
	queryVec := tfidfVector(all[0], idf)

	sims := make([]float64, len(docs))
	for i := range docs {
		sims[i] = cosine(queryVec, tfidfVector(all[i+1], idf))
	}
	return sims
}

// tokenize lowercases and splits on anything that isn't a letter or digit.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// inverseDocFreq computes smoothed IDF per term across the documents:
// log((1+N)/(1+df)) + 1. The smoothing keeps terms that appear in every
// document at a small positive weight instead of exactly zero, which is
// what keeps two identical documents at similarity 1.0.
func inverseDocFreq(docs [][]string) map[string]float64 {
	n := float64(len(docs))
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool, len(doc))
		for _, term := range doc {
			if !seen[term] {
				seen[term] = true
				df[term]++
			}
		}
	}

	idf := make(map[string]float64, len(df))
	for term, count := range df {
		idf[term] = math.Log((1+n)/(1+float64(count))) + 1
	}
	return idf
}

// tfidfVector builds the weight vector for one document.
func tfidfVector(doc []string, idf map[string]float64) map[string]float64 {
	if len(doc) == 0 {
		return nil
	}

	tf := make(map[string]float64)
	for _, term := range doc {
		tf[term]++
	}

	vec := make(map[string]float64, len(tf))
	for term, count := range tf {
		vec[term] = (count / float64(len(doc))) * idf[term]
	}
	return vec
}

// cosine computes the cosine similarity of two sparse vectors.
func cosine(a, b map[string]float64) float64 {
	var dot, normA, normB float64
	for term, wa := range a {
		normA += wa * wa
		if wb, ok := b[term]; ok {
			dot += wa * wb
		}
	}
	for _, wb := range b {
		normB += wb * wb
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
