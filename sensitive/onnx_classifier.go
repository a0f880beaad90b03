package sensitive

import (
	"context"
	"fmt"
	"math"
	"os"
	"sync"

	"github.com/daulet/tokenizers"
	onnxruntime "github.com/yalue/onnxruntime_go"
)

const (
	onnxMaxSeqLen = 512
	onnxNumLabels = 2 // index 0 = not sensitive, index 1 = sensitive
)

// ONNXClassifier runs a local binary text classifier for offline
// deployments where no Ollama service is reachable. Image content is
// not supported; ClassifyImage always errors and the image path's
// fail-open rule takes over.
//
// The session and its tensors are a single shared native resource, so
// inference runs are serialized under mu.
type ONNXClassifier struct {
	mu           sync.Mutex
	tokenizer    *tokenizers.Tokenizer
	session      *onnxruntime.AdvancedSession
	inputTensor  *onnxruntime.Tensor[int64]
	maskTensor   *onnxruntime.Tensor[int64]
	outputTensor *onnxruntime.Tensor[float32]
	modelPath    string
}

// NewONNXClassifier loads the tokenizer and prepares a classifier for
// the ONNX model at modelPath. The session itself is created lazily on
// first use.
func NewONNXClassifier(modelPath string, tokenizerPath string) (*ONNXClassifier, error) {
	if libPath := os.Getenv("ONNXRUNTIME_SHARED_LIBRARY_PATH"); libPath != "" {
		onnxruntime.SetSharedLibraryPath(libPath)
	}

	if !onnxruntime.IsInitialized() {
		if err := onnxruntime.InitializeEnvironment(); err != nil {
			return nil, fmt.Errorf("failed to initialize ONNX Runtime environment: %w", err)
		}
	}

	tk, err := tokenizers.FromFile(tokenizerPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load tokenizer: %w", err)
	}

	return &ONNXClassifier{
		tokenizer: tk,
		modelPath: modelPath,
	}, nil
}

// GetName returns the name of this classifier
func (d *ONNXClassifier) GetName() string {
	return ClassifierNameONNX
}

// ClassifyText tokenizes the text, runs the model and reports whether
// the sensitive class wins after softmax
func (d *ONNXClassifier) ClassifyText(ctx context.Context, text string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.session == nil {
		if err := d.initializeSession(); err != nil {
			return false, fmt.Errorf("failed to initialize session: %w", err)
		}
	}

	encoding := d.tokenizer.EncodeWithOptions(text, true)
	inputIDs, attentionMask := buildModelInputs(encoding.IDs)
	d.updateInputTensors(inputIDs, attentionMask)

	if err := d.session.Run(); err != nil {
		return false, fmt.Errorf("failed to run inference: %w", err)
	}

	return sensitiveFromLogits(d.outputTensor.GetData())
}

// ClassifyImage implements the Classifier interface. The local model is
// text-only, so images always error here.
func (d *ONNXClassifier) ClassifyImage(ctx context.Context, imageB64 string) (bool, error) {
	return false, fmt.Errorf("image classification is not supported by the ONNX classifier")
}

// buildModelInputs converts token IDs into ONNX input slices,
// truncating to the model's maximum sequence length
func buildModelInputs(tokenIDs []uint32) ([]int64, []int64) {
	if len(tokenIDs) > onnxMaxSeqLen {
		tokenIDs = tokenIDs[:onnxMaxSeqLen]
	}

	inputIDs := make([]int64, len(tokenIDs))
	attentionMask := make([]int64, len(tokenIDs))
	for i := range tokenIDs {
		inputIDs[i] = int64(tokenIDs[i])
		attentionMask[i] = 1
	}
	return inputIDs, attentionMask
}

// sensitiveFromLogits applies softmax over the two class logits and
// reports whether the sensitive class wins
func sensitiveFromLogits(logits []float32) (bool, error) {
	if len(logits) < onnxNumLabels {
		return false, fmt.Errorf("unexpected output size %d", len(logits))
	}

	var sum float64
	probs := make([]float64, onnxNumLabels)
	for i := 0; i < onnxNumLabels; i++ {
		probs[i] = math.Exp(float64(logits[i]))
		sum += probs[i]
	}
	sensitiveProb := probs[1] / sum

	return sensitiveProb >= 0.5, nil
}

// initializeSession creates the ONNX session and its tensors.
// Callers must hold mu.
func (d *ONNXClassifier) initializeSession() error {
	inputShape := onnxruntime.NewShape(1, onnxMaxSeqLen)
	inputTensor, err := onnxruntime.NewTensor(inputShape, make([]int64, onnxMaxSeqLen))
	if err != nil {
		return fmt.Errorf("failed to create input tensor: %w", err)
	}

	maskTensor, err := onnxruntime.NewTensor(inputShape, make([]int64, onnxMaxSeqLen))
	if err != nil {
		destroyQuietly(inputTensor)
		return fmt.Errorf("failed to create mask tensor: %w", err)
	}

	outputShape := onnxruntime.NewShape(1, onnxNumLabels)
	outputTensor, err := onnxruntime.NewEmptyTensor[float32](outputShape)
	if err != nil {
		destroyQuietly(inputTensor)
		destroyQuietly(maskTensor)
		return fmt.Errorf("failed to create output tensor: %w", err)
	}

	session, err := onnxruntime.NewAdvancedSession(d.modelPath,
		[]string{"input_ids", "attention_mask"},
		[]string{"logits"},
		[]onnxruntime.Value{inputTensor, maskTensor},
		[]onnxruntime.Value{outputTensor},
		nil)
	if err != nil {
		destroyQuietly(inputTensor)
		destroyQuietly(maskTensor)
		destroyQuietly(outputTensor)
		return fmt.Errorf("failed to create session: %w", err)
	}

	d.session = session
	d.inputTensor = inputTensor
	d.maskTensor = maskTensor
	d.outputTensor = outputTensor
	return nil
}

// updateInputTensors clears and refills the input tensors for a new run.
// Callers must hold mu.
func (d *ONNXClassifier) updateInputTensors(inputIDs, attentionMask []int64) {
	inputData := d.inputTensor.GetData()
	maskData := d.maskTensor.GetData()
	for i := range inputData {
		inputData[i] = 0
		maskData[i] = 0
	}
	copy(inputData, inputIDs)
	copy(maskData, attentionMask)
}

type destroyable interface {
	Destroy() error
}

func destroyQuietly(v destroyable) {
	if err := v.Destroy(); err != nil {
		fmt.Printf("Warning: failed to destroy tensor during cleanup: %v\n", err)
	}
}

// Close implements the Classifier interface
func (d *ONNXClassifier) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	var errs []error

	if d.session != nil {
		if err := d.session.Destroy(); err != nil {
			errs = append(errs, fmt.Errorf("failed to destroy session: %w", err))
		}
	}
	if d.inputTensor != nil {
		if err := d.inputTensor.Destroy(); err != nil {
			errs = append(errs, fmt.Errorf("failed to destroy input tensor: %w", err))
		}
	}
	if d.maskTensor != nil {
		if err := d.maskTensor.Destroy(); err != nil {
			errs = append(errs, fmt.Errorf("failed to destroy mask tensor: %w", err))
		}
	}
	if d.outputTensor != nil {
		if err := d.outputTensor.Destroy(); err != nil {
			errs = append(errs, fmt.Errorf("failed to destroy output tensor: %w", err))
		}
	}
	if d.tokenizer != nil {
		if err := d.tokenizer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close tokenizer: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("cleanup errors: %v", errs)
	}
	return nil
}
