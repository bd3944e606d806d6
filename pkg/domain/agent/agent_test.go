package agent

import "testing"

func TestChatModel(t *testing.T) {
	tests := []struct {
		name  string
		agent Agent
		want  string
	}{
		{
			name:  "bound chat model",
			agent: Agent{Models: map[ModelCapability]string{CapabilityChat: "gpt4"}},
			want:  "gpt4",
		},
		{
			name:  "other capabilities ignored",
			agent: Agent{Models: map[ModelCapability]string{CapabilityImageGen: "dalle"}},
			want:  "",
		},
		{name: "no bindings", agent: Agent{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.agent.ChatModel(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestIsZero(t *testing.T) {
	if !(Agent{}).IsZero() {
		t.Error("expected empty agent to be zero")
	}
	if (Agent{ID: "a1"}).IsZero() {
		t.Error("expected identified agent to be non-zero")
	}
	if (Agent{Name: "assistant"}).IsZero() {
		t.Error("expected named agent to be non-zero")
	}
}
