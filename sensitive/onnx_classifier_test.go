package sensitive

import (
	"context"
	"testing"
)

func TestONNXClassifier_GetName(t *testing.T) {
	// Create a minimal classifier without initializing ONNX
	classifier := &ONNXClassifier{}

	if classifier.GetName() != "onnx_classifier" {
		t.Errorf("Expected name 'onnx_classifier', got '%s'", classifier.GetName())
	}
}

func TestONNXClassifier_ClassifyImage_AlwaysErrors(t *testing.T) {
	classifier := &ONNXClassifier{}

	sensitive, err := classifier.ClassifyImage(context.Background(), "aW1hZ2VkYXRh")
	if err == nil {
		t.Fatalf("Expected error for image classification, got nil")
	}
	if sensitive {
		t.Errorf("Expected not sensitive alongside the error")
	}
}

func TestONNXClassifier_ImageDetectorFailsOpen(t *testing.T) {
	// The image detector resolves the unsupported-image error to "not
	// sensitive", so the ONNX backend never blocks image requests.
	detector := NewImageDetector(&ONNXClassifier{})

	if detector.IsSensitive(context.Background(), "aW1hZ2VkYXRh") {
		t.Errorf("Expected image to pass when the backend cannot classify it")
	}
}

func TestBuildModelInputs(t *testing.T) {
	testCases := []struct {
		name        string
		numTokens   int
		expectedLen int
	}{
		{name: "short text", numTokens: 100, expectedLen: 100},
		{name: "exactly max sequence length", numTokens: 512, expectedLen: 512},
		{name: "long text is truncated", numTokens: 1000, expectedLen: 512},
		{name: "empty text", numTokens: 0, expectedLen: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tokenIDs := make([]uint32, tc.numTokens)
			for i := range tokenIDs {
				tokenIDs[i] = uint32(i + 1)
			}

			inputIDs, attentionMask := buildModelInputs(tokenIDs)

			if len(inputIDs) != tc.expectedLen {
				t.Errorf("Expected %d input IDs, got %d", tc.expectedLen, len(inputIDs))
			}
			if len(attentionMask) != tc.expectedLen {
				t.Errorf("Expected %d mask entries, got %d", tc.expectedLen, len(attentionMask))
			}
			for i := range inputIDs {
				if inputIDs[i] != int64(tokenIDs[i]) {
					t.Errorf("Expected input ID %d at position %d, got %d", tokenIDs[i], i, inputIDs[i])
					break
				}
			}
			for i, m := range attentionMask {
				if m != 1 {
					t.Errorf("Expected attention mask 1 at position %d, got %d", i, m)
					break
				}
			}
		})
	}
}

func TestSensitiveFromLogits(t *testing.T) {
	testCases := []struct {
		name      string
		logits    []float32
		expected  bool
		expectErr bool
	}{
		{name: "sensitive class wins", logits: []float32{-1.0, 3.0}, expected: true},
		{name: "safe class wins", logits: []float32{2.5, -0.5}, expected: false},
		{name: "tie resolves to sensitive", logits: []float32{1.0, 1.0}, expected: true},
		{name: "extra trailing values are ignored", logits: []float32{0.0, 4.0, 9.9}, expected: true},
		{name: "output too short", logits: []float32{1.0}, expectErr: true},
		{name: "empty output", logits: []float32{}, expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := sensitiveFromLogits(tc.logits)
			if tc.expectErr {
				if err == nil {
					t.Errorf("expected an error, but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, but got: %v", err)
			}
			if got != tc.expected {
				t.Errorf("sensitiveFromLogits(%v) = %t, expected %t", tc.logits, got, tc.expected)
			}
		})
	}
}
