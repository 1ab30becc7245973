package agent

import (
	"context"
	"fmt"
	"os"

	"github.com/etnz/fundsim"
	"github.com/etnz/fundsim/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// newFacilitator builds the expert that owns the conversation and delegates
// to the others.
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skills from the Tools and ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is an investor or a fund manager studying a projected investment fund.
			He will ask about the fund's expected returns, its expenses, its asset mix,
			or how the projection reacts to different assumptions.

			Devise a plan of questions to each expert and come up with the best response to the user's request.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewMarkets returns the expert grounding answers in current market data.
func NewMarkets() *Expert {
	return &Expert{
		Name: "Markets",
		Description: `This is an expert in Brazilian fixed income and real estate markets.
		Very well aware of CDI, IPCA and Selic levels, of CRI, LCI and FII structures,
		and of the latest market news. Ask Markets whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in Brazilian fixed income and real estate markets.
			You leverage Google Search to ground your assertions about benchmark rates,
			credit spreads and property yields in current market data.
				`}}},
		},
	}
}

// NewAnalyst returns the expert in charge of the user's fund projection,
// read from the given configuration file.
func NewAnalyst(configFile string) *Expert {
	lib := []Function{
		projectionReport(configFile, "Statement",
			"Statement renders the fund's full monthly statement: NAV, flows, income, expenses and dividends for every projected month, plus the terminal portfolio composition.",
			renderer.StatementMarkdown),
		projectionReport(configFile, "AnnualStatement",
			"AnnualStatement renders the fund's annual income statement: income, expenses, fees, losses and distributions aggregated by calendar year.",
			renderer.AnnualMarkdown),
		projectionReport(configFile, "Metrics",
			"Metrics renders the investor-return metrics of the fund: IRR, MOIC, DPI, RVPI and payback.",
			renderer.MetricsMarkdown),
		projectionReport(configFile, "Expenses",
			"Expenses renders the fund's expense breakdown: each recurring expense, the performance fee and the credit loss provisions, accumulated over the horizon.",
			renderer.ExpensesMarkdown),
	}

	return &Expert{
		Name: "Analyst",
		Description: `This is the fund Analyst. He has run the projection of the user's fund
		and can produce any of its reports: monthly statement, annual income statement,
		investor-return metrics and expense breakdown.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are the analyst of the user's projected investment fund.
			Use the available tools to read the projection's reports and answer
			questions about NAV evolution, income, expenses, fees and investor returns.
			Figures are projections under the fund's rate assumptions, not promises; say so when relevant.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function.
type Func struct {
	Decl *genai.FunctionDeclaration
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

// projectionReport wraps a renderer report as a no-argument tool running the
// projection of the given configuration file.
func projectionReport(configFile, name, description string, render func(*fundsim.Projection) string) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: description,
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted report.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			report, err := runReport(configFile, render)
			if err != nil {
				return &genai.FunctionResponse{
					ID:   id,
					Name: name,
					Response: map[string]any{
						"error": err.Error(),
					},
				}
			}
			return &genai.FunctionResponse{
				ID:   id,
				Name: name,
				Response: map[string]any{
					"output": report,
				},
			}
		},
	}
}

// runReport loads the configuration file, runs the projection and renders
// one report from it.
func runReport(configFile string, render func(*fundsim.Projection) string) (string, error) {
	f, err := os.Open(configFile)
	if err != nil {
		return "", fmt.Errorf("could not open fund configuration %q: %w", configFile, err)
	}
	defer f.Close()

	cfg, err := fundsim.DecodeFundConfig(f)
	if err != nil {
		return "", fmt.Errorf("could not decode fund configuration %q: %w", configFile, err)
	}
	p, err := fundsim.Run(cfg)
	if err != nil {
		return "", fmt.Errorf("projection failed: %w", err)
	}
	return render(p), nil
}
