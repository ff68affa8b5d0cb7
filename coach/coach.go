// Package coach asks Gemini for a short coaching note on a dashboard.
//
// The model only sees rendered markdown: scores are computed by the engine, never by the model.
package coach

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/vitals"
	"github.com/etnz/vitals/date"
	"github.com/etnz/vitals/renderer"
	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// Model is the Gemini model used by default.
const Model = "gemini-2.5-flash"

// maxCalls bounds the function calls answered for a single question.
const maxCalls = 8

const instructions = `
You are a friendly wellbeing coach. The user logs their sleep, activity, nutrition, mood
and money every day, and a dashboard summarizes the last 30 days.

Read the dashboard, then write a short note (less than 200 words) in markdown:
  - start with what goes well;
  - pick the one or two alerts that matter most and suggest a concrete, small change;
  - never recompute a score, quote the numbers of the dashboard.

You are not a doctor nor a financial advisor, say so if the user asks for a diagnosis or for investment advice.
`

// generator is implemented by genai.Models.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// sender is implemented by genai.Chat.
type sender interface {
	Send(ctx context.Context, parts ...*genai.Part) (*genai.GenerateContentResponse, error)
}

// Prompt returns the message sent for a dashboard.
func Prompt(d vitals.Dashboard) string {
	return "Here is my dashboard:\n\n" + renderer.RenderDashboard(d)
}

// Advise returns a coaching note on the dashboard, written by model.
func Advise(ctx context.Context, client *genai.Client, model string, d vitals.Dashboard) (string, error) {
	return advise(ctx, client.Models, model, d)
}

func advise(ctx context.Context, g generator, model string, d vitals.Dashboard) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: instructions}}},
	}
	resp, err := g.GenerateContent(ctx, model, genai.Text(Prompt(d)), config)
	if err != nil {
		return "", fmt.Errorf("cannot generate advice: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.New("the model returned no advice")
	}
	return text, nil
}

// Coach is a chat session able to read the journal through its tools.
type Coach struct {
	Model   string
	Config  *genai.GenerateContentConfig
	Library Library
	Log     zerolog.Logger
	chat    sender
}

// New creates a coach for the journal of identity.
func New(identity string, j *vitals.Journal, s vitals.Scheme, today date.Date, log zerolog.Logger) *Coach {
	tools := Tools(identity, j, s, today)
	return &Coach{
		Model: Model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclarations(tools)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: instructions + fmt.Sprintf(`
Today is %s. Use the tools to read the dashboard of any day, the net worth, and the
documentation of the formulas when the user asks how a number is computed.
`, today)}}},
		},
		Library: NewLibrary(tools),
		Log:     log,
	}
}

// Start creates the chat session.
func (c *Coach) Start(ctx context.Context, client *genai.Client) error {
	chat, err := client.Chats.Create(ctx, c.Model, c.Config, nil)
	if err != nil {
		return err
	}
	c.chat = chat
	return nil
}

// Ask sends a message and answers the function calls until the model replies with text.
func (c *Coach) Ask(ctx context.Context, parts ...*genai.Part) (string, error) {
	if c.chat == nil {
		return "", errors.New("coach session not started")
	}
	for range maxCalls {
		resp, err := c.chat.Send(ctx, parts...)
		if err != nil {
			return "", err
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
			return "", errors.New("no response from the coach")
		}
		calls := resp.FunctionCalls()
		if len(calls) == 0 {
			return resp.Text(), nil
		}
		parts = nil
		for _, call := range calls {
			c.Log.Debug().Str("function", call.Name).Interface("args", call.Args).Msg("coach function call")
			parts = append(parts, &genai.Part{FunctionResponse: c.Library(ctx, call)})
		}
	}
	return "", fmt.Errorf("the coach made more than %d function calls", maxCalls)
}

const prompt = "coach> "

// Run is an interactive session on r and w: prompts are sent first, then the lines read
// from r until "bye" or EOF. Answers are printed with show.
func (c *Coach) Run(ctx context.Context, w io.Writer, r io.Reader, show func(string), prompts ...string) error {
	in := bufio.NewReader(r)
	fmt.Fprintln(w, "Welcome to the vitals coach. Type 'bye' to exit.")
	for {
		fmt.Fprint(w, prompt)
		var input string
		if len(prompts) > 0 {
			input, prompts = strings.TrimSpace(prompts[0]), prompts[1:]
			if input == "" {
				continue
			}
			fmt.Fprintln(w, input)
		} else {
			var err error
			input, err = in.ReadString('\n')
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
		}
		if strings.TrimSpace(input) == "bye" {
			return nil
		}

		answer, err := c.Ask(ctx, &genai.Part{Text: input})
		if err != nil {
			return err
		}
		show(answer)
	}
}
