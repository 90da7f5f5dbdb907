package domain

import (
	"errors"
	"testing"
)

func TestNewTask(t *testing.T) {
	t.Parallel() // Enable parallel execution
	// Test valid task creation
	task, err := NewTask("buy groceries", "milk, eggs", PriorityLow)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.ID != 0 {
		t.Errorf("Expected zero ID before persistence, got %d", task.ID)
	}

	if task.Text != "buy groceries" {
		t.Errorf("Expected text %q, got %q", "buy groceries", task.Text)
	}

	if task.Notes != "milk, eggs" {
		t.Errorf("Expected notes %q, got %q", "milk, eggs", task.Notes)
	}

	if task.Priority != PriorityLow {
		t.Errorf("Expected priority %s, got %s", PriorityLow, task.Priority)
	}

	if task.Done {
		t.Error("Expected new task to not be done")
	}

	if task.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	// Text is trimmed before validation
	task, err = NewTask("  call dentist  ", "", PriorityMedium)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if task.Text != "call dentist" {
		t.Errorf("Expected trimmed text %q, got %q", "call dentist", task.Text)
	}

	// Test empty text
	_, err = NewTask("", "", PriorityLow)
	if !errors.Is(err, ErrTaskTextEmpty) {
		t.Errorf("Expected error %v, got %v", ErrTaskTextEmpty, err)
	}

	// Whitespace-only text is also empty
	_, err = NewTask("   \t\n", "", PriorityLow)
	if !errors.Is(err, ErrTaskTextEmpty) {
		t.Errorf("Expected error %v, got %v", ErrTaskTextEmpty, err)
	}

	// Test invalid priority
	_, err = NewTask("valid text", "", Priority("urgent"))
	if !errors.Is(err, ErrTaskPriorityInvalid) {
		t.Errorf("Expected error %v, got %v", ErrTaskPriorityInvalid, err)
	}
}

func TestTaskValidate(t *testing.T) {
	t.Parallel() // Enable parallel execution
	validTask := Task{
		ID:       1,
		Text:     "write report",
		Priority: PriorityHigh,
	}

	// Test valid task
	if err := validTask.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	// Test empty text
	invalidTask := validTask
	invalidTask.Text = "   "
	if err := invalidTask.Validate(); !errors.Is(err, ErrTaskTextEmpty) {
		t.Errorf("Expected error %v, got %v", ErrTaskTextEmpty, err)
	}

	// Test missing priority
	invalidTask = validTask
	invalidTask.Priority = ""
	if err := invalidTask.Validate(); !errors.Is(err, ErrTaskPriorityInvalid) {
		t.Errorf("Expected error %v, got %v", ErrTaskPriorityInvalid, err)
	}
}
