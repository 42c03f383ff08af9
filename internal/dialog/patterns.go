package dialog

import "regexp"

// choiceAction is what a matched pattern in awaiting_choice means.
type choiceAction int

const (
	actionUserTells choiceAction = iota
	actionMachineTells
)

type choicePattern struct {
	re     *regexp.Regexp
	action choiceAction
}

var (
	// "I will tell a story" said from a cold start.
	tellOfferPattern = regexp.MustCompile(`내가.*(이야기|얘기)`)

	// Idle or bored openers that invite the story exchange.
	boredomPattern = regexp.MustCompile(`(심심|놀아줘|할거 없어|지루해|외로워|뭐할까|심심한데)`)

	// Ordered: the first match wins.
	choicePatterns = []choicePattern{
		{regexp.MustCompile(`내가\s*(할게|해볼게|할래|한다고|얘기해줄게|얘기할게|이야기할게|시작할게|말할게|말해줄게|말할래|얘기해볼게|얘기할래|이야기해볼게|이야기할래|해줄게|할게요|해볼게요|하겠어)`), actionUserTells},
		{regexp.MustCompile(`(너[가는]?\s*)?(해줘|얘기(해)?줘|이야기(해)?줘|말(해)?줘|들려줘|재밌는 얘기\s*해줘|얘기\s*좀\s*해줘|뭐\s*재밌는\s*얘기\s*없어)`), actionMachineTells},
	}

	punctuation = regexp.MustCompile(`[^\p{L}\p{N}\s]`)
)

func normalizeChoice(text string) string {
	return punctuation.ReplaceAllString(text, "")
}

func matchChoice(text string) (choiceAction, bool) {
	normalized := normalizeChoice(text)
	for _, p := range choicePatterns {
		if p.re.MatchString(normalized) {
			return p.action, true
		}
	}
	return 0, false
}
