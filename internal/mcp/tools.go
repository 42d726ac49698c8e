package mcp

import (
	"context"
	"fmt"
	"strings"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"flagcheck/internal/provision"
	"flagcheck/internal/tags"
	"flagcheck/internal/validate"
)

type ReadTagsInput struct {
	TagFile string `json:"tag_file" jsonschema:"path to the countries.txt file"`
}

type ReadTagsOutput struct {
	Tags []string `json:"tags"`
}

type CheckFlagsInput struct {
	Directory string   `json:"directory" jsonschema:"folder containing the flag files"`
	TagFile   string   `json:"tag_file,omitempty" jsonschema:"countries.txt to read tags from"`
	Tags      []string `json:"tags,omitempty" jsonschema:"explicit tags, used when tag_file is empty"`
}

type CheckFlagsOutput struct {
	Tags     []string `json:"tags"`
	Checked  int      `json:"checked"`
	Missing  []string `json:"missing"`
	Complete bool     `json:"complete"`
}

type ProvisionFlagsInput struct {
	Directory string   `json:"directory" jsonschema:"folder containing the flag files and the template"`
	Files     []string `json:"files" jsonschema:"flag file names to create from the template"`
}

type FailureOutput struct {
	Name  string `json:"name"`
	Error string `json:"error"`
}

type ProvisionFlagsOutput struct {
	Template string          `json:"template"`
	Created  []string        `json:"created"`
	Failed   []FailureOutput `json:"failed"`
	OK       bool            `json:"ok"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "read_tags",
		Description: "Read country tags declared in a countries.txt file",
	}, s.handleReadTags)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "check_flags",
		Description: "List the flag files missing for a set of country tags",
	}, s.handleCheckFlags)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "provision_flags",
		Description: "Create missing flag files by copying the template flag",
	}, s.handleProvisionFlags)
}

func (s *Server) handleReadTags(ctx context.Context, req *sdk.CallToolRequest, input ReadTagsInput) (*sdk.CallToolResult, ReadTagsOutput, error) {
	if strings.TrimSpace(input.TagFile) == "" {
		return nil, ReadTagsOutput{}, fmt.Errorf("tag_file is required")
	}
	tagList, err := tags.ReadFile(input.TagFile)
	if err != nil {
		return nil, ReadTagsOutput{}, err
	}
	return nil, ReadTagsOutput{Tags: tagList}, nil
}

func (s *Server) handleCheckFlags(ctx context.Context, req *sdk.CallToolRequest, input CheckFlagsInput) (*sdk.CallToolResult, CheckFlagsOutput, error) {
	if strings.TrimSpace(input.Directory) == "" {
		return nil, CheckFlagsOutput{}, fmt.Errorf("directory is required")
	}

	tagList := input.Tags
	if input.TagFile != "" {
		var err error
		tagList, err = tags.ReadFile(input.TagFile)
		if err != nil {
			return nil, CheckFlagsOutput{}, err
		}
	}
	if len(tagList) == 0 {
		return nil, CheckFlagsOutput{}, fmt.Errorf("no country tags to check")
	}
	for _, tag := range tagList {
		if !tags.ValidTag(tag) {
			return nil, CheckFlagsOutput{}, fmt.Errorf("invalid country tag %q", tag)
		}
	}

	report := validate.Run(input.Directory, tagList, s.layout)
	s.logger.Debug("checked flags", zap.String("directory", input.Directory), zap.Int("missing", len(report.Missing)))
	return nil, CheckFlagsOutput{
		Tags:     report.Tags,
		Checked:  len(report.Checked),
		Missing:  report.Missing,
		Complete: report.Complete(),
	}, nil
}

func (s *Server) handleProvisionFlags(ctx context.Context, req *sdk.CallToolRequest, input ProvisionFlagsInput) (*sdk.CallToolResult, ProvisionFlagsOutput, error) {
	if strings.TrimSpace(input.Directory) == "" {
		return nil, ProvisionFlagsOutput{}, fmt.Errorf("directory is required")
	}

	result, err := provision.Run(input.Directory, input.Files, s.layout, provision.Options{Logger: s.logger})
	if err != nil {
		return nil, ProvisionFlagsOutput{}, err
	}
	return nil, provisionOutputFromResult(result), nil
}

func provisionOutputFromResult(result *provision.Result) ProvisionFlagsOutput {
	out := ProvisionFlagsOutput{
		Template: result.Template,
		Created:  result.Created(),
		Failed:   make([]FailureOutput, 0),
		OK:       result.OK(),
	}
	for _, outcome := range result.Failed() {
		out.Failed = append(out.Failed, FailureOutput{Name: outcome.Name, Error: outcome.Err.Error()})
	}
	return out
}
