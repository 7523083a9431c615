package server

import (
	"testing"
	"time"
)

func TestWebLogger_BasicLogging(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewWebLogger("test-render-123", messageChan)

	logger.Printf("Rendering %dx%d with %d workers\n", 400, 225, 4)

	select {
	case msg := <-messageChan:
		expected := "Rendering 400x225 with 4 workers\n"
		if msg.Message != expected {
			t.Errorf("Expected message '%s', got '%s'", expected, msg.Message)
		}
		if msg.RenderID != "test-render-123" {
			t.Errorf("Expected render ID 'test-render-123', got '%s'", msg.RenderID)
		}
		if msg.Level != "info" {
			t.Errorf("Expected level 'info', got '%s'", msg.Level)
		}
		if time.Since(msg.Timestamp) > time.Second {
			t.Errorf("Timestamp seems too old: %v", msg.Timestamp)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("Timeout waiting for console message")
	}
}

func TestWebLogger_MultipleMessagesInOrder(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewWebLogger("test-render-456", messageChan)

	messages := []string{"Message 1", "Message 2", "Message 3"}
	for _, msg := range messages {
		logger.Printf("%s\n", msg)
	}

	for i, expected := range messages {
		select {
		case msg := <-messageChan:
			if msg.Message != expected+"\n" {
				t.Errorf("Message %d: expected '%s', got '%s'", i, expected+"\n", msg.Message)
			}
		case <-time.After(200 * time.Millisecond):
			t.Fatalf("Timeout waiting for message %d", i+1)
		}
	}
}

func TestWebLogger_ChannelFullDoesNotBlock(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 1)
	logger := NewWebLogger("test-render-789", messageChan)

	done := make(chan struct{})
	go func() {
		logger.Printf("Message 1\n")
		logger.Printf("Message 2\n")
		logger.Printf("Message 3\n")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Printf blocked on a full channel")
	}
	if len(messageChan) != 1 {
		t.Errorf("Expected 1 buffered message, got %d", len(messageChan))
	}
}

func TestWebLogger_NilChannel(t *testing.T) {
	logger := NewWebLogger("test-render-nil", nil)
	logger.Printf("Test message with nil channel\n")
}

func TestMessageLevel(t *testing.T) {
	tests := []struct {
		message  string
		expected string
	}{
		{"Render complete in 1.2s\n", "info"},
		{"Rendering failed: context canceled\n", "error"},
		{"Error loading scene\n", "error"},
		{"Warning: scene has no lights\n", "warning"},
		{"Render cancelled after 12 tiles\n", "warning"},
	}

	for _, tt := range tests {
		if got := messageLevel(tt.message); got != tt.expected {
			t.Errorf("messageLevel(%q) = %q, expected %q", tt.message, got, tt.expected)
		}
	}
}
