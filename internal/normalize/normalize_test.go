// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripLatex(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "Deep Learning", "Deep Learning"},
		{"formatting command", `\textbf{Deep} Learning`, "Deep Learning"},
		{"nested commands", `\textbf{\emph{Deep}} Learning`, "Deep Learning"},
		{"protected braces", `{BERT}: Pre-training`, "BERT: Pre-training"},
		{"umlaut accent", `G\"{o}del`, "Godel"},
		{"acute accent", `Caf\'e`, "Cafe"},
		{"escaped ampersand", `Q\&A`, "Q&A"},
		{"href keeps label", `\href{http://x.y}{Link}`, "Link"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripLatex(tt.in))
		})
	}
}

func TestFold(t *testing.T) {
	assert.Equal(t, "Godel", Fold("Gödel"))
	assert.Equal(t, "Lukasz", Fold("Łukasz"))
	assert.Equal(t, "Muller", Fold("Müller"))
	assert.Equal(t, "Strasse", Fold("Straße"))
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "attention all you need", Title("The Attention Is All You Need!"))
	assert.Equal(t, "bert pre training deep bidirectional transformers language understanding",
		Title("BERT: Pre-training of Deep Bidirectional Transformers for Language Understanding"))
	// Only stopwords: keep them rather than returning an empty title.
	assert.Equal(t, "the the", Title("The The"))
	assert.Equal(t, "", Title("  "))
}

func TestTitleSimilarity(t *testing.T) {
	bert := "BERT: Pre-training of Deep Bidirectional Transformers for Language Understanding"

	assert.Equal(t, 1.0, TitleSimilarity(bert, strings.ToUpper(bert)+"."))
	assert.Equal(t, 1.0, TitleSimilarity(`{BERT}: Pre-training of deep bidirectional transformers for language understanding`, bert))
	assert.Less(t, TitleSimilarity("Attention Is All You Need", "Deep Residual Learning for Image Recognition"), 0.5)
	assert.Equal(t, 0.0, TitleSimilarity("", bert))

	near := TitleSimilarity(bert, "BERT: Pretraining of Deep Bidirectional Transformers for Language Understanding")
	assert.Greater(t, near, 0.7)
	assert.Less(t, near, 1.0)

	// Symmetric.
	a, b := "Language Models are Few-Shot Learners", "Language Models are Unsupervised Multitask Learners"
	assert.Equal(t, TitleSimilarity(a, b), TitleSimilarity(b, a))
}

func TestJaccard(t *testing.T) {
	assert.InDelta(t, 1.0/3.0, Jaccard([]string{"a", "b"}, []string{"b", "c"}), 1e-9)
	assert.Equal(t, 1.0, Jaccard(nil, nil))
	assert.Equal(t, 1.0, Jaccard([]string{"a", "a"}, []string{"a"}))
}

func TestEditSimilarity(t *testing.T) {
	assert.InDelta(t, 1-3.0/7.0, EditSimilarity("kitten", "sitting"), 1e-9)
	assert.Equal(t, 1.0, EditSimilarity("", ""))
	assert.Equal(t, 0.0, EditSimilarity("abc", ""))
}

func TestSurname(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Vaswani, Ashish", "vaswani"},
		{"Ashish Vaswani", "vaswani"},
		{"J. Devlin", "devlin"},
		{"Martin Luther King Jr.", "king"},
		{"Wei Wang 0001", "wang"},
		{"Kurt Gödel", "godel"},
		{`Kurt G\"{o}del`, "godel"},
		{"García-Pérez, José", "perez"},
		{"José García-Pérez", "perez"},
		{"others", ""},
		{"et al.", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Surname(tt.in))
		})
	}
}

func TestAuthorOverlap(t *testing.T) {
	claimed := []string{"Alice Smith", "Bob Jones", "Carol Lee", "Dan Kim"}
	truncated := []string{"Smith, A.", "Jones, B.", "Lee, C."}

	assert.InDelta(t, 0.75, AuthorOverlap(claimed, truncated), 1e-9)
	assert.InDelta(t, 1.0, AuthorOverlap(truncated, claimed), 1e-9)
	assert.Equal(t, 0.0, AuthorOverlap(nil, claimed))
	assert.Equal(t, 1.0, AuthorOverlap([]string{"Alice Smith", "others"}, []string{"A. Smith"}))
}

func TestSymmetricOverlap(t *testing.T) {
	a := []string{"Alice Smith", "Bob Jones", "Carol Lee", "Dan Kim"}
	b := []string{"Smith, A.", "Jones, B."}

	assert.Equal(t, SymmetricOverlap(a, b), SymmetricOverlap(b, a))
	assert.Equal(t, 1.0, SymmetricOverlap(a, b))
	assert.Equal(t, 0.0, SymmetricOverlap(a, nil))
}

func TestVenueLookup(t *testing.T) {
	table := DefaultVenueTable()

	tests := []struct {
		venue    string
		name     string
		kind     VenueKind
		academic bool
	}{
		{"Proceedings of ACL 2025", "ACL", KindConference, true},
		{"NAACL 2019", "NAACL", KindConference, true},
		{"Proceedings of the 2019 Conference of the North American Chapter of the Association for Computational Linguistics: Human Language Technologies", "NAACL", KindConference, true},
		{"International Conference on Learning Representations", "ICLR", KindConference, true},
		{"Advances in Neural Information Processing Systems 30", "NeurIPS", KindConference, true},
		{"Journal of Machine Learning Research", "JMLR", KindJournal, true},
		{"Transactions of the Association for Computational Linguistics", "TACL", KindJournal, true},
		{"Proceedings of the Workshop on Noisy Text at ACL 2020", "ACL", KindWorkshop, true},
		{"arXiv preprint arXiv:2304.12345", "arXiv", KindPreprint, false},
		{"CoRR", "arXiv", KindPreprint, false},
		{"Nature", "Nature", KindJournal, true},
	}
	for _, tt := range tests {
		t.Run(tt.venue, func(t *testing.T) {
			v, ok := table.Lookup(tt.venue)
			require.True(t, ok)
			assert.Equal(t, tt.name, v.Name)
			assert.Equal(t, tt.kind, v.Kind)
			assert.Equal(t, tt.academic, v.Academic)
		})
	}

	_, ok := table.Lookup("Lecture Notes in Computer Science")
	assert.False(t, ok, "science alias must not match inside a longer venue")
	_, ok = table.Lookup("")
	assert.False(t, ok)
}

func TestVenueKnownAndPreprint(t *testing.T) {
	table := DefaultVenueTable()

	assert.True(t, table.IsKnownAcademic("Proceedings of ACL 2025"))
	assert.False(t, table.IsKnownAcademic("arXiv"))
	assert.False(t, table.IsKnownAcademic("Journal of Obscure Studies"))

	assert.True(t, table.IsPreprint("arXiv preprint"))
	assert.True(t, table.IsPreprint("bioRxiv"))
	assert.True(t, table.IsPreprint("Some preprint server"))
	assert.False(t, table.IsPreprint("NAACL 2019"))
}

func TestVenueCompatible(t *testing.T) {
	table := DefaultVenueTable()

	assert.True(t, table.Compatible("ICLR", "International Conference on Learning Representations", 0.8))
	assert.True(t, table.Compatible("NeurIPS 2017", "Advances in Neural Information Processing Systems", 0.8))
	assert.False(t, table.Compatible("ICML", "NeurIPS", 0.8))
	assert.True(t, table.Compatible("Journal of Obscure Studies", "Proceedings of the Journal of Obscure Studies 2019", 0.8))
	assert.False(t, table.Compatible("Obscure Studies", "Unrelated Letters", 0.8))
}

func TestVenueFormat(t *testing.T) {
	table := DefaultVenueTable()

	assert.Equal(t, "NAACL 2019", table.Format("NAACL 2019", 2019))
	assert.Equal(t, "ACL 2025", table.Format("Proceedings of ACL", 2025))
	assert.Equal(t, "ACL Workshop 2020", table.Format("Workshop on Noisy Text at ACL", 2020))
	assert.Equal(t, "Journal of Obscure Studies", table.Format("Journal of Obscure Studies", 0))
}

func TestLoadVenueTable(t *testing.T) {
	doc := `
- name: OBSCON
  kind: conference
  academic: true
  aliases:
    - obscure conference on things
- name: Preprints Inc
  kind: preprint
`
	table, err := LoadVenueTable(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, table.Venues(), 2)

	v, ok := table.Lookup("Proc. Obscure Conference on Things 2021")
	require.True(t, ok)
	assert.Equal(t, "OBSCON", v.Name)
	assert.True(t, v.Academic)

	_, err = LoadVenueTable(strings.NewReader("- kind: journal\n"))
	assert.Error(t, err)
}

func TestPrestige(t *testing.T) {
	assert.Greater(t, Prestige(KindJournal), Prestige(KindConference))
	assert.Greater(t, Prestige(KindConference), Prestige(KindWorkshop))
	assert.Greater(t, Prestige(KindWorkshop), Prestige(KindPreprint))
}

func TestDOI(t *testing.T) {
	assert.Equal(t, "10.18653/v1/n19-1423", DOI("https://doi.org/10.18653/V1/N19-1423"))
	assert.Equal(t, "10.1000/xyz", DOI("doi:10.1000/xyz."))
	assert.True(t, ValidDOI("10.18653/v1/N19-1423"))
	assert.False(t, ValidDOI("not a doi"))
	assert.True(t, IsArxivDOI("10.48550/arXiv.2304.12345"))
	assert.False(t, IsArxivDOI("10.18653/v1/N19-1423"))
	assert.Equal(t, "https://doi.org/10.18653/v1/n19-1423", DOIURL("10.18653/v1/N19-1423"))
}

func TestArxivID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2304.12345", "2304.12345"},
		{"arXiv:2304.12345v2", "2304.12345"},
		{"https://arxiv.org/abs/2304.12345", "2304.12345"},
		{"https://arxiv.org/pdf/2304.12345v1.pdf", "2304.12345"},
		{"https://arxiv.org/abs/hep-th/9901001v1", "hep-th/9901001"},
		{"10.48550/arXiv.2304.12345", "2304.12345"},
		{"1706.0376", "1706.0376"},
		{"", ""},
		{"no identifier here", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ArxivID(tt.in))
		})
	}

	assert.Equal(t, "2304.12345", FindArxivID("see arXiv:2304.12345 for details"))
	assert.Equal(t, "", FindArxivID("pages 1234.5678"))
	assert.True(t, IsArxivURL("https://arXiv.org/abs/2304.12345"))
	assert.Equal(t, "https://arxiv.org/abs/2304.12345", ArxivURL("2304.12345"))
}

func TestYears(t *testing.T) {
	assert.True(t, YearsCompatible(2018, 2019, 1))
	assert.False(t, YearsCompatible(2017, 2019, 1))
	assert.False(t, YearsCompatible(2018, 2019, 0))
	assert.True(t, YearsCompatible(0, 2019, 0))

	assert.Equal(t, 2019, ExtractYear("NAACL 2019"))
	assert.Equal(t, 0, ExtractYear("no year"))
	assert.Equal(t, 0, ExtractYear("2304.12345"))
}
