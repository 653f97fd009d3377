package services

import (
	"sort"
	"strings"
	"unicode"

	"eduplatform/models"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
	"golang.org/x/text/unicode/norm"
)

const (
	subjectSearchLimit   = 5
	minSubjectSimilarity = 0.5
)

// removeDiacritics drops combining marks, including Arabic harakat, so a
// vocalized query matches an unvocalized name.
func removeDiacritics(s string) string {
	t := norm.NFD.String(s)
	var b strings.Builder
	for _, r := range t {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// normalizeInput lowercases and transliterates s to ASCII so Arabic and
// English names can be compared against the same query.
func normalizeInput(s string) string {
	return strings.ToLower(strings.TrimSpace(unidecode.Unidecode(removeDiacritics(s))))
}

func createMatcher(keywords []string) *closestmatch.ClosestMatch {
	return closestmatch.New(keywords, []int{2, 3})
}

// calculateSimilarity is 1 minus the normalized edit distance.
func calculateSimilarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(distance)/float64(maxLen)
}

type scoredSubject struct {
	subject models.Subject
	score   float64
}

// RankSubjects returns up to limit subjects whose English or Arabic name is
// close to query, best match first. Substring matches always qualify.
func RankSubjects(query string, subjects []models.Subject, limit int) []models.Subject {
	q := normalizeInput(query)
	if q == "" || len(subjects) == 0 {
		return []models.Subject{}
	}
	if limit <= 0 {
		limit = subjectSearchLimit
	}

	owners := make(map[string][]int)
	for i, s := range subjects {
		for _, key := range []string{normalizeInput(s.Name), normalizeInput(s.NameAr)} {
			if key != "" {
				owners[key] = append(owners[key], i)
			}
		}
	}
	keys := make([]string, 0, len(owners))
	for k := range owners {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	candidates := make(map[string]bool)
	for _, k := range createMatcher(keys).ClosestN(q, limit*3) {
		candidates[k] = true
	}
	for _, k := range keys {
		if strings.Contains(k, q) {
			candidates[k] = true
		}
	}

	best := make(map[int]float64)
	for key := range candidates {
		score := calculateSimilarity(q, key)
		if strings.Contains(key, q) {
			score += 1
		}
		if score < minSubjectSimilarity {
			continue
		}
		for _, i := range owners[key] {
			if score > best[i] {
				best[i] = score
			}
		}
	}

	ranked := make([]scoredSubject, 0, len(best))
	for i, score := range best {
		ranked = append(ranked, scoredSubject{subject: subjects[i], score: score})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].subject.ID < ranked[j].subject.ID
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	out := make([]models.Subject, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.subject)
	}
	return out
}
