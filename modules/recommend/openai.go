package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/jobdeskhq/jobdesk/modules/jobs"
	"github.com/jobdeskhq/jobdesk/modules/profiles"
)

const rankerSystemPrompt = "You are a job matching assistant. Analyze the candidate profile and " +
	"the available jobs, then pick the five best matching jobs. Respond with " +
	"only their job ids as a comma-separated list, best match first."

// Only the first page of postings goes into the prompt.
const rankerJobCap = 20

// OpenAIRanker asks a chat model to pick the best matching postings.
type OpenAIRanker struct {
	client *openai.Client
	model  string
}

// NewOpenAIRanker creates a ranker backed by the OpenAI chat API.
func NewOpenAIRanker(apiKey, model string) *OpenAIRanker {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIRanker{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (r *OpenAIRanker) Rank(ctx context.Context, profile *profiles.SeekerProfile, candidates []jobs.Job) ([]string, error) {
	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: r.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: rankerSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(profile, candidates)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("chat completion returned no choices")
	}

	var ids []string
	for _, id := range strings.Split(resp.Choices[0].Message.Content, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func buildPrompt(profile *profiles.SeekerProfile, candidates []jobs.Job) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Candidate: skills %s, %d years of experience, location %s, preferred types %s.\n\nJobs:\n",
		strings.Join(profile.Skills, ", "),
		profile.ExperienceYears,
		profile.Location,
		strings.Join(profile.PreferredJobTypes, ", "))

	for i, job := range candidates {
		if i == rankerJobCap {
			break
		}
		fmt.Fprintf(&b, "id %s: %s at %s, skills %s, location %s, type %s\n",
			job.ID, job.Title, job.CompanyName,
			strings.Join(job.RequiredSkills, ", "),
			job.Location, job.Type)
	}
	return b.String()
}
