package services

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// SparseVector maps a vocabulary index to a weight.
type SparseVector map[int]float64

// Vectorizer turns documents into sparse vectors over a shared vocabulary.
type Vectorizer interface {
	FitTransform(docs []string) []SparseVector
}

type tfidfVectorizer struct {
	maxFeatures int
	stopWords   map[string]struct{}
}

// NewTFIDFVectorizer returns an L2-normalized TF-IDF vectorizer with smoothed
// idf and English stop words removed.
func NewTFIDFVectorizer(maxFeatures int) Vectorizer {
	if maxFeatures <= 0 {
		maxFeatures = 5000
	}
	return &tfidfVectorizer{maxFeatures: maxFeatures, stopWords: englishStopWords}
}

var tokenPattern = regexp.MustCompile(`[\pL\pN_]{2,}`)

func (v *tfidfVectorizer) tokenize(doc string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(doc), -1)
	tokens := raw[:0]
	for _, tok := range raw {
		if _, stop := v.stopWords[tok]; !stop {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// FitTransform implements Vectorizer.
func (v *tfidfVectorizer) FitTransform(docs []string) []SparseVector {
	counts := make([]map[string]int, len(docs))
	corpusFreq := make(map[string]int)
	docFreq := make(map[string]int)

	for i, doc := range docs {
		counts[i] = make(map[string]int)
		for _, tok := range v.tokenize(doc) {
			counts[i][tok]++
			corpusFreq[tok]++
		}
		for tok := range counts[i] {
			docFreq[tok]++
		}
	}

	vocab := v.buildVocabulary(corpusFreq)
	n := float64(len(docs))
	vectors := make([]SparseVector, len(docs))

	for i, tf := range counts {
		vec := make(SparseVector)
		var norm float64
		// Sum in token order; map order would change the last bits.
		for _, tok := range sortedTokens(tf) {
			idx, ok := vocab[tok]
			if !ok {
				continue
			}
			idf := math.Log((1+n)/(1+float64(docFreq[tok]))) + 1
			w := float64(tf[tok]) * idf
			vec[idx] = w
			norm += w * w
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for idx := range vec {
				vec[idx] /= norm
			}
		}
		vectors[i] = vec
	}

	return vectors
}

// buildVocabulary keeps the maxFeatures most frequent terms, ties broken
// alphabetically so the result is deterministic.
func (v *tfidfVectorizer) buildVocabulary(freq map[string]int) map[string]int {
	terms := make([]string, 0, len(freq))
	for t := range freq {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool {
		if freq[terms[i]] != freq[terms[j]] {
			return freq[terms[i]] > freq[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > v.maxFeatures {
		terms = terms[:v.maxFeatures]
	}
	sort.Strings(terms)

	vocab := make(map[string]int, len(terms))
	for i, t := range terms {
		vocab[t] = i
	}
	return vocab
}

// SparseCosine returns the cosine similarity of two sparse vectors, 0 when
// either is empty. Sums run in index order so equal inputs give equal bits.
func SparseCosine(a, b SparseVector) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	if len(b) < len(a) {
		a, b = b, a
	}

	var dot, na, nb float64
	for _, idx := range a.indices() {
		w := a[idx]
		dot += w * b[idx]
		na += w * w
	}
	for _, idx := range b.indices() {
		w := b[idx]
		nb += w * w
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return clamp01(dot / (math.Sqrt(na) * math.Sqrt(nb)))
}

// indices returns the vector's indices in ascending order.
func (v SparseVector) indices() []int {
	out := make([]int, 0, len(v))
	for idx := range v {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}

func sortedTokens(tf map[string]int) []string {
	out := make([]string, 0, len(tf))
	for tok := range tf {
		out = append(out, tok)
	}
	sort.Strings(out)
	return out
}

var englishStopWords = func() map[string]struct{} {
	words := strings.Fields(`
		a about above across after afterwards again against all almost alone along already also
		although always am among amongst an and another any anyhow anyone anything anyway anywhere
		are around as at be became because become becomes becoming been before beforehand behind
		being below beside besides between beyond both but by can cannot could did do does doing
		done down during each eg either else elsewhere enough etc even ever every everyone everything
		everywhere except few for former formerly from further had has have having he hence her here
		hereafter hereby herein hers herself him himself his how however ie if in indeed into is it
		its itself just last latter latterly least less made many may me meanwhile might mine more
		moreover most mostly much must my myself namely neither never nevertheless next no nobody
		none noone nor not nothing now nowhere of off often on once one only onto or other others
		otherwise our ours ourselves out over own per perhaps please rather re same seem seemed
		seeming seems several she should since so some somehow someone something sometime sometimes
		somewhere still such than that the their theirs them themselves then thence there thereafter
		thereby therefore therein thereupon these they this those though through throughout thru thus
		to together too toward towards under until up upon us very via was we well were what whatever
		when whence whenever where whereafter whereas whereby wherein whereupon wherever whether which
		while whither who whoever whole whom whose why will with within without would yet you your
		yours yourself yourselves`)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}()
