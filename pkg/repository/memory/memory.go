package memory

import (
	"github.com/tailkeep-lab/tailkeep/pkg/domain/interfaces"
)

type Memory struct {
	conversation *conversationRepository
	pet          *petRepository
	task         *taskRepository
	vaccination  *vaccinationRepository
	notification *notificationRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		conversation: newConversationRepository(),
		pet:          newPetRepository(),
		task:         newTaskRepository(),
		vaccination:  newVaccinationRepository(),
		notification: newNotificationRepository(),
	}
}

func (m *Memory) Conversation() interfaces.ConversationRepository {
	return m.conversation
}

func (m *Memory) Pet() interfaces.PetRepository {
	return m.pet
}

func (m *Memory) Task() interfaces.TaskRepository {
	return m.task
}

func (m *Memory) Vaccination() interfaces.VaccinationRepository {
	return m.vaccination
}

func (m *Memory) Notification() interfaces.NotificationRepository {
	return m.notification
}

func (m *Memory) Close() error {
	return nil
}
