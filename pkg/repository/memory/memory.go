package memory

import (
	"github.com/pathlight-lab/pathlight/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

// Memory is the in-memory implementation of interfaces.Repository,
// used for development mode and tests.
type Memory struct {
	opportunity *opportunityRepository
	profile     *profileRepository
	chatLog     *chatLogRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		opportunity: newOpportunityRepository(),
		profile:     newProfileRepository(),
		chatLog:     newChatLogRepository(),
	}
}

func (m *Memory) Opportunity() interfaces.OpportunityRepository {
	return m.opportunity
}

func (m *Memory) Profile() interfaces.ProfileRepository {
	return m.profile
}

func (m *Memory) ChatLog() interfaces.ChatLogRepository {
	return m.chatLog
}

func (m *Memory) Close() error {
	return nil
}
