package models

// BuddyProfile is a candidate shown on the find-a-buddy screen.
type BuddyProfile struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Location      string `json:"location"`
	TrainingFocus string `json:"training_focus"`
	Image         string `json:"image"`
}

// ChatMessage is one line in a conversation with a matched buddy.
type ChatMessage struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}
