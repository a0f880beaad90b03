package sensitive

import (
	"context"
	"fmt"

	"github.com/promptguard/promptguard/ollama"
)

const (
	ClassifierNameModel = "model_classifier"
	ClassifierNameONNX  = "onnx_classifier"
)

// Classifier decides whether content carries sensitive data. Both modes
// return an error when the backing model cannot give an answer; callers
// own the fallback behavior.
type Classifier interface {
	GetName() string
	ClassifyText(ctx context.Context, text string) (bool, error)
	ClassifyImage(ctx context.Context, imageB64 string) (bool, error)
	Close() error
}

type NewClassifierFunc func(config map[string]interface{}) (Classifier, error)

var classifierFactories = make(map[string]NewClassifierFunc)

func RegisterClassifierFactory(name string, factory NewClassifierFunc) {
	classifierFactories[name] = factory
}

func NewClassifier(name string, config map[string]interface{}) (Classifier, error) {
	factory, ok := classifierFactories[name]
	if !ok {
		return nil, fmt.Errorf("classifier factory not found for name: %s", name)
	}
	return factory(config)
}

func init() {
	// Register built-in classifier factories
	RegisterClassifierFactory(ClassifierNameModel, func(config map[string]interface{}) (Classifier, error) {
		client, ok := config["chat_client"].(ollama.ChatClient)
		if !ok {
			return nil, fmt.Errorf("chat_client is required for model classifier")
		}
		model, ok := config["model"].(string)
		if !ok {
			return nil, fmt.Errorf("model is required for model classifier")
		}
		return NewModelClassifier(client, model), nil
	})

	RegisterClassifierFactory(ClassifierNameONNX, func(config map[string]interface{}) (Classifier, error) {
		modelPath, ok := config["model_path"].(string)
		if !ok {
			return nil, fmt.Errorf("model_path is required for ONNX classifier")
		}
		tokenizerPath, ok := config["tokenizer_path"].(string)
		if !ok {
			return nil, fmt.Errorf("tokenizer_path is required for ONNX classifier")
		}
		return NewONNXClassifier(modelPath, tokenizerPath)
	})
}
