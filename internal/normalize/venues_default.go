// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

// defaultVenues is the curated venue table. Rows are matched by longest
// alias, so a specific alias ("north american chapter of the association
// for computational linguistics") wins over a shorter one it contains.
var defaultVenues = []Venue{
	// Natural language processing.
	{Name: "ACL", Kind: KindConference, Academic: true, Aliases: []string{
		"association for computational linguistics",
		"annual meeting of the association for computational linguistics",
	}},
	{Name: "NAACL", Kind: KindConference, Academic: true, Aliases: []string{
		"naacl hlt",
		"north american chapter of the association for computational linguistics",
	}},
	{Name: "EACL", Kind: KindConference, Academic: true, Aliases: []string{
		"european chapter of the association for computational linguistics",
	}},
	{Name: "Findings of ACL", Kind: KindConference, Academic: true, Aliases: []string{
		"findings of acl", "findings of emnlp", "findings of naacl",
		"findings of the association for computational linguistics",
	}},
	{Name: "EMNLP", Kind: KindConference, Academic: true, Aliases: []string{
		"empirical methods in natural language processing",
	}},
	{Name: "COLING", Kind: KindConference, Academic: true, Aliases: []string{
		"international conference on computational linguistics",
	}},
	{Name: "TACL", Kind: KindJournal, Academic: true, Aliases: []string{
		"transactions of the association for computational linguistics",
	}},
	{Name: "Computational Linguistics", Kind: KindJournal, Academic: true, Aliases: []string{
		"=computational linguistics",
	}},

	// Machine learning and AI.
	{Name: "NeurIPS", Kind: KindConference, Academic: true, Aliases: []string{
		"nips", "neural information processing systems",
		"advances in neural information processing systems",
	}},
	{Name: "ICML", Kind: KindConference, Academic: true, Aliases: []string{
		"international conference on machine learning",
	}},
	{Name: "ICLR", Kind: KindConference, Academic: true, Aliases: []string{
		"international conference on learning representations",
	}},
	{Name: "AAAI", Kind: KindConference, Academic: true, Aliases: []string{
		"aaai conference on artificial intelligence",
		"association for the advancement of artificial intelligence",
	}},
	{Name: "IJCAI", Kind: KindConference, Academic: true, Aliases: []string{
		"international joint conference on artificial intelligence",
	}},
	{Name: "AISTATS", Kind: KindConference, Academic: true, Aliases: []string{
		"artificial intelligence and statistics",
	}},
	{Name: "UAI", Kind: KindConference, Academic: true, Aliases: []string{
		"uncertainty in artificial intelligence",
	}},
	{Name: "COLT", Kind: KindConference, Academic: true, Aliases: []string{
		"conference on learning theory",
	}},
	{Name: "JMLR", Kind: KindJournal, Academic: true, Aliases: []string{
		"journal of machine learning research",
	}},
	{Name: "TMLR", Kind: KindJournal, Academic: true, Aliases: []string{
		"transactions on machine learning research",
	}},
	{Name: "Artificial Intelligence", Kind: KindJournal, Academic: true, Aliases: []string{
		"=artificial intelligence", "=artif intell",
	}},
	{Name: "Neural Computation", Kind: KindJournal, Academic: true},
	{Name: "Nature Machine Intelligence", Kind: KindJournal, Academic: true, Aliases: []string{
		"nat mach intell",
	}},

	// Vision, graphics, robotics.
	{Name: "CVPR", Kind: KindConference, Academic: true, Aliases: []string{
		"computer vision and pattern recognition",
	}},
	{Name: "ICCV", Kind: KindConference, Academic: true, Aliases: []string{
		"international conference on computer vision",
	}},
	{Name: "ECCV", Kind: KindConference, Academic: true, Aliases: []string{
		"european conference on computer vision",
	}},
	{Name: "TPAMI", Kind: KindJournal, Academic: true, Aliases: []string{
		"pattern analysis and machine intelligence",
	}},
	{Name: "IJCV", Kind: KindJournal, Academic: true, Aliases: []string{
		"international journal of computer vision",
	}},
	{Name: "SIGGRAPH", Kind: KindConference, Academic: true},
	{Name: "TOG", Kind: KindJournal, Academic: true, Aliases: []string{
		"acm transactions on graphics",
	}},
	{Name: "ICRA", Kind: KindConference, Academic: true, Aliases: []string{
		"international conference on robotics and automation",
	}},
	{Name: "IROS", Kind: KindConference, Academic: true, Aliases: []string{
		"intelligent robots and systems",
	}},
	{Name: "CoRL", Kind: KindConference, Academic: true, Aliases: []string{
		"conference on robot learning",
	}},
	{Name: "MICCAI", Kind: KindConference, Academic: true, Aliases: []string{
		"medical image computing and computer assisted intervention",
	}},

	// Data, web, information retrieval.
	{Name: "KDD", Kind: KindConference, Academic: true, Aliases: []string{
		"sigkdd", "knowledge discovery and data mining",
	}},
	{Name: "WWW", Kind: KindConference, Academic: true, Aliases: []string{
		"the web conference", "world wide web conference",
	}},
	{Name: "SIGIR", Kind: KindConference, Academic: true, Aliases: []string{
		"research and development in information retrieval",
	}},
	{Name: "WSDM", Kind: KindConference, Academic: true, Aliases: []string{
		"web search and data mining",
	}},
	{Name: "CIKM", Kind: KindConference, Academic: true, Aliases: []string{
		"information and knowledge management",
	}},
	{Name: "RecSys", Kind: KindConference, Academic: true, Aliases: []string{
		"conference on recommender systems",
	}},
	{Name: "SIGMOD", Kind: KindConference, Academic: true, Aliases: []string{
		"management of data",
	}},
	{Name: "VLDB", Kind: KindConference, Academic: true, Aliases: []string{
		"very large data bases", "pvldb",
	}},
	{Name: "ICDE", Kind: KindConference, Academic: true, Aliases: []string{
		"international conference on data engineering",
	}},

	// Speech.
	{Name: "ICASSP", Kind: KindConference, Academic: true, Aliases: []string{
		"acoustics speech and signal processing",
	}},
	{Name: "Interspeech", Kind: KindConference, Academic: true},

	// Systems, security, software, theory.
	{Name: "OSDI", Kind: KindConference, Academic: true, Aliases: []string{
		"operating systems design and implementation",
	}},
	{Name: "SOSP", Kind: KindConference, Academic: true, Aliases: []string{
		"symposium on operating systems principles",
	}},
	{Name: "NSDI", Kind: KindConference, Academic: true, Aliases: []string{
		"networked systems design and implementation",
	}},
	{Name: "SIGCOMM", Kind: KindConference, Academic: true},
	{Name: "ASPLOS", Kind: KindConference, Academic: true, Aliases: []string{
		"architectural support for programming languages and operating systems",
	}},
	{Name: "ISCA", Kind: KindConference, Academic: true, Aliases: []string{
		"international symposium on computer architecture",
	}},
	{Name: "USENIX Security", Kind: KindConference, Academic: true, Aliases: []string{
		"usenix security symposium",
	}},
	{Name: "CCS", Kind: KindConference, Academic: true, Aliases: []string{
		"computer and communications security",
	}},
	{Name: "IEEE S&P", Kind: KindConference, Academic: true, Aliases: []string{
		"ieee symposium on security and privacy",
	}},
	{Name: "ICSE", Kind: KindConference, Academic: true, Aliases: []string{
		"international conference on software engineering",
	}},
	{Name: "FSE", Kind: KindConference, Academic: true, Aliases: []string{
		"esec fse", "foundations of software engineering",
	}},
	{Name: "PLDI", Kind: KindConference, Academic: true, Aliases: []string{
		"programming language design and implementation",
	}},
	{Name: "POPL", Kind: KindConference, Academic: true, Aliases: []string{
		"principles of programming languages",
	}},
	{Name: "STOC", Kind: KindConference, Academic: true, Aliases: []string{
		"symposium on theory of computing",
	}},
	{Name: "FOCS", Kind: KindConference, Academic: true, Aliases: []string{
		"foundations of computer science",
	}},
	{Name: "SODA", Kind: KindConference, Academic: true, Aliases: []string{
		"symposium on discrete algorithms",
	}},
	{Name: "CHI", Kind: KindConference, Academic: true, Aliases: []string{
		"human factors in computing systems",
	}},

	// General science journals.
	{Name: "Nature", Kind: KindJournal, Academic: true, Aliases: []string{"=nature"}},
	{Name: "Science", Kind: KindJournal, Academic: true, Aliases: []string{"=science"}},
	{Name: "PNAS", Kind: KindJournal, Academic: true, Aliases: []string{
		"proceedings of the national academy of sciences",
	}},
	{Name: "Communications of the ACM", Kind: KindJournal, Academic: true, Aliases: []string{
		"commun acm", "cacm",
	}},
	{Name: "Journal of the ACM", Kind: KindJournal, Academic: true, Aliases: []string{
		"jacm", "j acm",
	}},

	// Preprint servers and reports.
	{Name: "arXiv", Kind: KindPreprint, Aliases: []string{"corr", "arxiv preprint"}},
	{Name: "bioRxiv", Kind: KindPreprint},
	{Name: "medRxiv", Kind: KindPreprint},
	{Name: "SSRN", Kind: KindPreprint, Aliases: []string{"social science research network"}},
	{Name: "TechRxiv", Kind: KindPreprint},
	{Name: "Research Square", Kind: KindPreprint},
	{Name: "Technical Report", Kind: KindPreprint, Aliases: []string{"tech report", "tech rep", "techreport"}},
}

// DefaultVenueTable returns the built-in venue table.
func DefaultVenueTable() *VenueTable {
	return NewVenueTable(defaultVenues)
}
