package dialog

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"

	kerrors "github.com/go-kratos/kratos/v2/errors"

	"github.com/sswu-capstoneDesign2025/backend/pkg/logger"
)

// Story is a persisted user-told story shared with other users.
type Story struct {
	Title   string
	Content string
	Author  string
	Region  string
	Topic   string
}

// StoryStore is the persistence collaborator of the machine. SaveStory writes
// both the teller's personal note and the shared record other users can hear.
type StoryStore interface {
	SaveStory(ctx context.Context, s Story) error
	ListShared(ctx context.Context) ([]Story, error)
}

// Reply is one turn's output: what to say and which state the caller should
// echo back next time.
type Reply struct {
	Text string
	Next State
}

const (
	askForStory     = "그래, 어떤 이야기야?"
	offerExchange   = "재밌는 얘기 하나 해줄까? 아니면 너가 해줄래?"
	askWhoTells     = "너가 재밌는 얘기해줄래? 아니면 내가 해줄까?"
	noStoredStory   = "아직 들려줄 이야기가 없어. 너가 하나 말해줄래?"
	storySaved      = "좋은 이야기 고마워! 잘 저장해둘게."
	askToRepeat     = "이야기를 정리하는 데 너무 오래 걸렸어요. 다시 한 번 말해줄래요?"
	gracefulThanks  = "잘 들었어요. 고마워요!"
	unknownState    = "알 수 없는 상태입니다."
	timeoutStrikes  = 2
)

// Machine is the story-intent dialogue state machine. It is stateless per
// turn except for the per-username cleaning failure counter.
type Machine struct {
	store   StoryStore
	cleaner Cleaner

	mu    sync.Mutex
	fails map[string]int

	pick func(n int) int
}

func NewMachine(store StoryStore, cleaner Cleaner) *Machine {
	return &Machine{
		store:   store,
		cleaner: cleaner,
		fails:   map[string]int{},
		pick:    rand.Intn,
	}
}

// Turn advances the conversation one step.
func (m *Machine) Turn(ctx context.Context, text string, state State, username string) (Reply, error) {
	switch state {
	case StateInitial:
		return m.fromInitial(text), nil
	case StateAwaitingChoice:
		return m.fromAwaitingChoice(ctx, text)
	case StateAwaitingStory:
		return m.fromAwaitingStory(ctx, text, username)
	default:
		return Reply{Text: unknownState, Next: StateInitial}, nil
	}
}

func (m *Machine) fromInitial(text string) Reply {
	if tellOfferPattern.MatchString(text) {
		return Reply{Text: askForStory, Next: StateAwaitingStory}
	}
	if boredomPattern.MatchString(text) {
		return Reply{Text: offerExchange, Next: StateAwaitingChoice}
	}
	return Reply{Text: askWhoTells, Next: StateAwaitingChoice}
}

func (m *Machine) fromAwaitingChoice(ctx context.Context, text string) (Reply, error) {
	action, ok := matchChoice(text)
	if !ok {
		return Reply{Text: unknownState, Next: StateInitial}, nil
	}
	if action == actionUserTells {
		return Reply{Text: askForStory, Next: StateAwaitingStory}, nil
	}

	stories, err := m.store.ListShared(ctx)
	if err != nil {
		logger.Log.Errorf("list shared stories: %v", err)
		stories = nil
	}
	if len(stories) == 0 {
		return Reply{Text: noStoredStory, Next: StateAwaitingChoice}, nil
	}
	chosen := stories[m.pick(len(stories))]
	return Reply{
		Text: fmt.Sprintf("그럼 내가 해줄게! %s... %s", chosen.Title, chosen.Content),
		Next: StateComplete,
	}, nil
}

func (m *Machine) fromAwaitingStory(ctx context.Context, text, username string) (Reply, error) {
	if username == "" {
		return Reply{}, kerrors.BadRequest("USERNAME_REQUIRED", "이야기를 저장하려면 사용자 이름이 필요합니다.")
	}

	story, err := m.cleaner.Clean(ctx, text)
	if err != nil {
		if errors.Is(err, ErrCleanTimeout) {
			return m.timeoutStrike(username), nil
		}
		return Reply{}, kerrors.InternalServer("STORY_CLEANING_FAILED", err.Error())
	}
	m.clearStrikes(username)

	saved := Story{
		Title:   story.Title,
		Content: story.Story,
		Author:  username,
		Region:  story.Region,
		Topic:   story.Topic,
	}
	if err := m.store.SaveStory(ctx, saved); err != nil {
		return Reply{}, kerrors.InternalServer("STORY_SAVE_FAILED", err.Error())
	}
	logger.Log.Infof("story saved for %s: %s", username, story.Title)
	return Reply{Text: storySaved, Next: StateComplete}, nil
}

// timeoutStrike applies the two-strike policy: the first timeout asks the
// user to repeat, the second gives up gracefully and resets the counter.
func (m *Machine) timeoutStrike(username string) Reply {
	m.mu.Lock()
	m.fails[username]++
	count := m.fails[username]
	if count >= timeoutStrikes {
		delete(m.fails, username)
	}
	m.mu.Unlock()

	if count >= timeoutStrikes {
		return Reply{Text: gracefulThanks, Next: StateComplete}
	}
	return Reply{Text: askToRepeat, Next: StateAwaitingStory}
}

func (m *Machine) clearStrikes(username string) {
	m.mu.Lock()
	delete(m.fails, username)
	m.mu.Unlock()
}
