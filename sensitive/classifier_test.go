package sensitive

import (
	"testing"
)

func TestNewClassifier_UnknownName(t *testing.T) {
	if _, err := NewClassifier("does_not_exist", nil); err == nil {
		t.Errorf("Expected error for unknown classifier name, got nil")
	}
}

func TestNewClassifier_ModelFactory(t *testing.T) {
	classifier, err := NewClassifier(ClassifierNameModel, map[string]interface{}{
		"chat_client": &scriptedChatClient{},
		"model":       "llava:7b",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if classifier.GetName() != ClassifierNameModel {
		t.Errorf("Expected name '%s', got '%s'", ClassifierNameModel, classifier.GetName())
	}
}

func TestNewClassifier_ModelFactoryMissingClient(t *testing.T) {
	if _, err := NewClassifier(ClassifierNameModel, map[string]interface{}{
		"model": "llava:7b",
	}); err == nil {
		t.Errorf("Expected error when chat_client is missing, got nil")
	}
}

func TestNewClassifier_ModelFactoryMissingModel(t *testing.T) {
	if _, err := NewClassifier(ClassifierNameModel, map[string]interface{}{
		"chat_client": &scriptedChatClient{},
	}); err == nil {
		t.Errorf("Expected error when model is missing, got nil")
	}
}

func TestNewClassifier_ONNXFactoryMissingPaths(t *testing.T) {
	if _, err := NewClassifier(ClassifierNameONNX, map[string]interface{}{}); err == nil {
		t.Errorf("Expected error when model_path is missing, got nil")
	}
	if _, err := NewClassifier(ClassifierNameONNX, map[string]interface{}{
		"model_path": "model.onnx",
	}); err == nil {
		t.Errorf("Expected error when tokenizer_path is missing, got nil")
	}
}
