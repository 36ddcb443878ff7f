package classify

// ContentTypeOriginal is the sentinel returned when no rule matches.
const ContentTypeOriginal = "original"

type contentTypeRule struct {
	contentType string
	keywords    []string
}

// contentTypeRules is scanned in declaration order and the first rule with
// any keyword hit wins. Order is part of the contract: dance outranks
// tutorial, so a dance tutorial files under dance.
var contentTypeRules = []contentTypeRule{
	{"dance", []string{
		"dance", "dancing", "dancer", "choreo", "choreography",
		"zanku", "legwork", "azonto",
	}},
	{"comedy", []string{
		"comedy", "funny", "skit", "prank", "laugh", "hilarious", "joke",
	}},
	{"music_performance", []string{
		"official video", "official audio", "music video", "live performance",
		"freestyle", "new single", "studio session", "perform",
	}},
	{"fashion", []string{
		"fashion", "outfit", "style", "ootd", "lookbook", "asoebi",
	}},
	{"food", []string{
		"food", "recipe", "cooking", "kitchen", "chef", "jollof",
	}},
	{"sports", []string{
		"football", "soccer", "basketball", "workout", "fitness", "gym",
	}},
	{"tutorial", []string{
		"tutorial", "how to", "learn", "lesson", "tips", "diy",
	}},
	{"vlog", []string{
		"vlog", "day in my life", "grwm", "storytime", "a day in",
	}},
}

type culturalTagGroup struct {
	tags     []string
	keywords []string
}

// culturalTagGroups maps scene/region keywords onto region label sets. A
// single keyword hit adds every tag in the group; all groups are scanned,
// so one caption can fire several regions at once.
var culturalTagGroups = []culturalTagGroup{
	{
		tags: []string{"nigeria", "naija"},
		keywords: []string{
			"nigeria", "naija", "lagos", "abuja", "afrobeats", "afrobeat",
			"yoruba", "igbo", "wizkid", "davido", "burna boy", "japa",
		},
	},
	{
		tags: []string{"south africa", "mzansi"},
		keywords: []string{
			"south africa", "mzansi", "amapiano", "johannesburg", "joburg",
			"durban", "cape town", "gqom", "zulu", "yanos",
		},
	},
	{
		tags: []string{"ghana"},
		keywords: []string{
			"ghana", "accra", "highlife", "hiplife", "kumasi", "ghanaian",
		},
	},
	{
		tags: []string{"kenya"},
		keywords: []string{
			"kenya", "nairobi", "gengetone", "kenyan",
		},
	},
	{
		tags: []string{"tanzania", "bongo"},
		keywords: []string{
			"tanzania", "bongo flava", "dar es salaam", "swahili",
		},
	},
	{
		tags: []string{"congo"},
		keywords: []string{
			"congo", "kinshasa", "rumba", "ndombolo", "soukous",
		},
	},
	{
		tags: []string{"diaspora"},
		keywords: []string{
			"diaspora", "abroad", "overseas", "detty december",
		},
	},
}
