package genai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"examprep/internal/quiz"
)

// MaxSourceLen bounds the source text submitted with a generation request.
const MaxSourceLen = 8000

const generationSystemInstruction = "You are a strict and helpful professor preparing exam questions."

// generatedQuestion is the structured shape the model is asked to produce.
type generatedQuestion struct {
	Content       string   `json:"content"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// GenerateQuestions produces count questions of the given kind from source
// text. Blank source text returns an empty slice without calling the
// service. All other failures wrap ErrGeneration.
func (p *Provider) GenerateQuestions(ctx context.Context, sourceText string, count int, kind quiz.Kind) ([]quiz.Question, error) {
	if strings.TrimSpace(sourceText) == "" {
		return []quiz.Question{}, nil
	}
	if len(sourceText) > MaxSourceLen {
		cut := MaxSourceLen
		for cut > 0 && !utf8.RuneStart(sourceText[cut]) {
			cut--
		}
		sourceText = sourceText[:cut]
	}

	prompt := fmt.Sprintf(
		"Generate %d %s questions based on the following text.\n\nText content:\n%q\n\nEnsure the questions are suitable for a final exam review.",
		count, kindPhrase(kind), sourceText,
	)
	request := generationRequest(prompt, nil, kind)
	return p.runGeneration(ctx, request, kind)
}

// GenerateQuestionsFromImage produces questions from an image, for example a
// photographed page of lecture notes. Same contract as GenerateQuestions.
func (p *Provider) GenerateQuestionsFromImage(ctx context.Context, image []byte, mimeType string, count int, kind quiz.Kind) ([]quiz.Question, error) {
	if len(image) == 0 {
		return []quiz.Question{}, nil
	}
	prompt := fmt.Sprintf(
		"Generate %d %s questions based on the attached image.\n\nEnsure the questions are suitable for a final exam review.",
		count, kindPhrase(kind),
	)
	inline := &inlineData{
		MIMEType: mimeType,
		Data:     base64.StdEncoding.EncodeToString(image),
	}
	request := generationRequest(prompt, inline, kind)
	return p.runGeneration(ctx, request, kind)
}

func (p *Provider) runGeneration(ctx context.Context, request generateRequest, kind quiz.Kind) ([]quiz.Question, error) {
	text, err := p.generate(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	var raw []generatedQuestion
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("%w: parse response: %v", ErrGeneration, err)
	}

	questions := make([]quiz.Question, 0, len(raw))
	for _, item := range raw {
		question := quiz.Question{
			ID:            quiz.NewID(),
			Kind:          kind,
			Prompt:        item.Content,
			CorrectAnswer: item.CorrectAnswer,
			Explanation:   item.Explanation,
		}
		if kind == quiz.KindChoice {
			question.Options = item.Options
		}
		questions = append(questions, question)
	}
	return questions, nil
}

func generationRequest(prompt string, image *inlineData, kind quiz.Kind) generateRequest {
	parts := []part{{Text: prompt}}
	if image != nil {
		parts = append(parts, part{InlineData: image})
	}
	return generateRequest{
		Contents:          []content{{Parts: parts}},
		SystemInstruction: &content{Parts: []part{{Text: generationSystemInstruction}}},
		GenerationConfig: &generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   questionListSchema(kind),
		},
	}
}

func questionListSchema(kind quiz.Kind) *schema {
	properties := map[string]*schema{
		"content": {Type: "STRING", Description: "The question text"},
		"correctAnswer": {
			Type:        "STRING",
			Description: "The correct answer text exactly matching one of the options or the model answer",
		},
		"explanation": {
			Type:        "STRING",
			Description: "Brief explanation of why this answer is correct",
		},
	}
	if kind == quiz.KindChoice {
		properties["options"] = &schema{
			Type:        "ARRAY",
			Items:       &schema{Type: "STRING"},
			Description: "Array of 4 possible options",
		}
	}
	return &schema{
		Type: "ARRAY",
		Items: &schema{
			Type:       "OBJECT",
			Properties: properties,
			Required:   []string{"content", "correctAnswer", "explanation"},
		},
	}
}

func kindPhrase(kind quiz.Kind) string {
	if kind == quiz.KindChoice {
		return "multiple choice"
	}
	return "short answer"
}
