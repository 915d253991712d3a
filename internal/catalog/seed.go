package catalog

import "github.com/jmartyn/giftwise/internal/apest"

// Builtin returns the bundled 25-question APEST instrument: five scale
// questions per dimension on a 1-5 Likert domain, one of them reverse
// scored. It is used by the demo command and as a test fixture; real
// deployments author catalogs as JSON documents.
func Builtin() *Catalog {
	prompts := map[apest.Dimension][]string{
		apest.Apostolic: {
			"I am energized by starting new ventures",
			"I naturally think about unreached people and places",
			"I enjoy building teams around a shared vision",
			"I get restless when things stay the same too long",
			"I prefer maintaining what exists over pioneering something new",
		},
		apest.Prophetic: {
			"I sense when something is off before others do",
			"I am willing to say hard truths even when unpopular",
			"I feel a strong pull toward justice issues",
			"People say I challenge their assumptions",
			"I avoid confronting problems to keep the peace",
		},
		apest.Evangelistic: {
			"I naturally connect with people outside my community",
			"I look for openings to share what I believe",
			"Strangers open up to me easily",
			"I enjoy translating ideas for skeptical audiences",
			"I find it draining to meet new people",
		},
		apest.Shepherding: {
			"People come to me when they are struggling",
			"I notice when someone in a group is hurting",
			"I invest in a few people over a long time",
			"I create spaces where people feel safe",
			"I lose track of how individuals in my group are doing",
		},
		apest.Teaching: {
			"I enjoy explaining complex ideas simply",
			"I study a topic until I understand it deeply",
			"People ask me to help them understand things",
			"I care that ideas are applied, not just understood",
			"I get impatient with questions about details",
		},
	}

	var questions []Question
	idx := 0
	for _, d := range apest.All() {
		for i, text := range prompts[d] {
			idx++
			questions = append(questions, Question{
				ID:            questionID(d, i+1),
				Text:          text,
				Type:          TypeScale,
				Dimension:     d,
				Weight:        1,
				ReverseScored: i == 4, // last prompt per dimension is phrased negatively
				Required:      true,
				OrderIndex:    idx,
				Domain:        ValueDomain{Min: 1, Max: 5},
			})
		}
	}

	return New("apest-standard", "APEST Ministry Gifts Assessment", "1.0.0", questions)
}

func questionID(d apest.Dimension, n int) string {
	return string(d[:2]) + "-" + string(rune('0'+n))
}
