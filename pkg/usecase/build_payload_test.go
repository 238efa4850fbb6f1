package usecase_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/actnotify/pkg/domain/model"
	"github.com/m-mizutani/actnotify/pkg/domain/types"
	"github.com/m-mizutani/actnotify/pkg/usecase"
	"github.com/m-mizutani/actnotify/pkg/utils/testutil"
	"github.com/m-mizutani/gt"
)

func baseTrigger() model.TriggerContext {
	return model.TriggerContext{
		Owner: "a",
		Repo:  "b",
		Ref:   "refs/heads/master",
		SHA:   "shashasha",
	}
}

func prTrigger() model.TriggerContext {
	trigger := baseTrigger()
	trigger.EventName = "pull_request"
	trigger.PullRequest = &model.PullRequestHead{
		Ref: "pr-ref",
		SHA: "pr-shashasha",
	}
	return trigger
}

func TestBuildAttachment(t *testing.T) {
	type testCase struct {
		trigger func() model.TriggerContext
		options model.MessageOptions
		test    func(t *testing.T, payload *model.Payload)
	}

	runTest := func(tc testCase) func(t *testing.T) {
		return func(t *testing.T) {
			payload := gt.R1(usecase.BuildPayload(tc.trigger(), tc.options)).NoError(t)
			gt.A(t, payload.Blocks).Length(0)
			gt.A(t, payload.Attachments).Length(1)
			gt.Equal(t, payload.Text, "")
			tc.test(t, payload)
		}
	}

	t.Run("minimal", runTest(testCase{
		trigger: baseTrigger,
		options: model.MessageOptions{Text: "c", Color: "good"},
		test: func(t *testing.T, payload *model.Payload) {
			att := payload.Attachments[0]
			gt.Equal(t, att.Color, "good")
			gt.Equal(t, att.Fallback, "[a/b] (master) c")
			gt.Equal(t, att.MarkdownIn, []string{"text"})
			gt.Equal(t, att.Text, "c")
			gt.Equal(t, att.Footer, "*<https://github.com/a/b|a/b>* (<https://github.com/a/b/tree/master|master>)")
			gt.Equal(t, att.FooterIcon, "https://github.com/a.png")
			gt.Equal(t, att.AuthorName, "")
			gt.Equal(t, att.Title, "")
			gt.Equal(t, att.TitleLink, "")
		},
	}))

	t.Run("with author and workflow", runTest(testCase{
		trigger: func() model.TriggerContext {
			trigger := baseTrigger()
			trigger.Actor = "jdrydn"
			trigger.Workflow = "CI/CD"
			return trigger
		},
		options: model.MessageOptions{Text: "c", Color: "good"},
		test: func(t *testing.T, payload *model.Payload) {
			att := payload.Attachments[0]
			gt.Equal(t, att.AuthorName, "jdrydn")
			gt.Equal(t, att.AuthorIcon, "https://github.com/jdrydn.png")
			gt.Equal(t, att.AuthorLink, "https://github.com/jdrydn")
			gt.Equal(t, att.Title, "CI/CD (#shashas)")
			gt.Equal(t, att.TitleLink, "https://github.com/a/b/commit/shashasha/checks")
		},
	}))

	t.Run("pull request uses head ref and sha", runTest(testCase{
		trigger: func() model.TriggerContext {
			trigger := prTrigger()
			trigger.Actor = "jdrydn"
			trigger.Workflow = "CI/CD"
			return trigger
		},
		options: model.MessageOptions{Text: "c", Color: "good"},
		test: func(t *testing.T, payload *model.Payload) {
			att := payload.Attachments[0]
			gt.Equal(t, att.Fallback, "[a/b] (pr-ref) c")
			gt.Equal(t, att.Title, "CI/CD (#pr-shas)")
			gt.Equal(t, att.TitleLink, "https://github.com/a/b/commit/pr-shashasha/checks")
			gt.Equal(t, att.Footer, "*<https://github.com/a/b|a/b>* (<https://github.com/a/b/tree/pr-ref|pr-ref>)")
			gt.S(t, att.Footer).NotContains("master")
		},
	}))

	t.Run("run id links to workflow run", runTest(testCase{
		trigger: func() model.TriggerContext {
			trigger := baseTrigger()
			trigger.Workflow = "CI/CD"
			trigger.RunID = "42"
			return trigger
		},
		options: model.MessageOptions{Text: "c", Color: "danger"},
		test: func(t *testing.T, payload *model.Payload) {
			att := payload.Attachments[0]
			gt.Equal(t, att.Color, "danger")
			gt.Equal(t, att.TitleLink, "https://github.com/a/b/actions/runs/42")
		},
	}))

	t.Run("title option and images", runTest(testCase{
		trigger: func() model.TriggerContext {
			trigger := baseTrigger()
			trigger.Workflow = "CI/CD"
			trigger.ServerURL = "https://ghe.example.com/"
			return trigger
		},
		options: model.MessageOptions{
			Text:     "c",
			Color:    "1a2b3c",
			Title:    "Deploy",
			ImageURL: "https://example.com/image.png",
			ThumbURL: "https://example.com/thumb.png",
		},
		test: func(t *testing.T, payload *model.Payload) {
			att := payload.Attachments[0]
			gt.Equal(t, att.Color, "#1a2b3c")
			gt.Equal(t, att.Title, "Deploy")
			gt.Equal(t, att.TitleLink, "https://ghe.example.com/a/b/commit/shashasha/checks")
			gt.Equal(t, att.ImageURL, "https://example.com/image.png")
			gt.Equal(t, att.ThumbURL, "https://example.com/thumb.png")
			gt.Equal(t, att.FooterIcon, "https://ghe.example.com/a.png")
		},
	}))
}

func TestBuildBlocks(t *testing.T) {
	t.Run("section and context", func(t *testing.T) {
		trigger := baseTrigger()
		trigger.EventName = "push"
		trigger.Actor = "jdrydn"
		trigger.Workflow = "CI/CD"

		payload := gt.R1(usecase.BuildPayload(trigger, model.MessageOptions{Text: "Deploy ok"})).NoError(t)
		gt.A(t, payload.Attachments).Length(0)
		gt.Equal(t, payload.Text, "[a/b] (master) Deploy ok")

		data := testutil.ToMap(t, payload)
		blocks := data["blocks"].([]any)
		gt.A(t, blocks).Length(2)

		section := blocks[0].(map[string]any)
		gt.Equal(t, section["type"], any("section"))
		gt.Equal(t, section["text"].(map[string]any)["type"], any("mrkdwn"))
		gt.Equal(t, section["text"].(map[string]any)["text"], any("Deploy ok"))
		_, hasAccessory := section["accessory"]
		gt.False(t, hasAccessory)

		context := blocks[1].(map[string]any)
		gt.Equal(t, context["type"], any("context"))
		elements := context["elements"].([]any)
		gt.A(t, elements).Length(2)
		gt.Equal(t, elements[0].(map[string]any)["text"],
			any("*Push* by *<https://github.com/jdrydn|jdrydn>* from *<https://github.com/a/b/commit/shashasha/checks|CI/CD>*"))
		gt.Equal(t, elements[1].(map[string]any)["text"],
			any("*<https://github.com/a/b|a/b>* (<https://github.com/a/b/tree/master|master>) (<https://github.com/a/b/commit/shashasha|#shashas>)"))
	})

	t.Run("context without workflow has only links", func(t *testing.T) {
		payload := gt.R1(usecase.BuildPayload(prTrigger(), model.MessageOptions{Text: "x"})).NoError(t)

		data := testutil.ToMap(t, payload)
		blocks := data["blocks"].([]any)
		gt.A(t, blocks).Length(2)
		elements := blocks[1].(map[string]any)["elements"].([]any)
		gt.A(t, elements).Length(1)
		gt.S(t, elements[0].(map[string]any)["text"].(string)).
			Contains("tree/pr-ref|pr-ref").
			Contains("commit/pr-shashasha|#pr-shas").
			NotContains("master")
	})

	t.Run("header, thumbnail and image", func(t *testing.T) {
		trigger := prTrigger()
		trigger.Actor = "jdrydn"
		trigger.Workflow = "CI/CD"
		trigger.RunID = "7"

		payload := gt.R1(usecase.BuildPayload(trigger, model.MessageOptions{
			Text:     "x",
			Title:    "Release",
			ImageURL: "https://example.com/image.png",
			ThumbURL: "https://example.com/thumb.png",
		})).NoError(t)

		data := testutil.ToMap(t, payload)
		blocks := data["blocks"].([]any)
		gt.A(t, blocks).Length(4)

		header := blocks[0].(map[string]any)
		gt.Equal(t, header["type"], any("header"))
		gt.Equal(t, header["text"].(map[string]any)["text"], any("Release"))

		section := blocks[1].(map[string]any)
		accessory := section["accessory"].(map[string]any)
		gt.Equal(t, accessory["type"], any("image"))
		gt.Equal(t, accessory["image_url"], any("https://example.com/thumb.png"))

		image := blocks[2].(map[string]any)
		gt.Equal(t, image["type"], any("image"))
		gt.Equal(t, image["image_url"], any("https://example.com/image.png"))

		elements := blocks[3].(map[string]any)["elements"].([]any)
		gt.A(t, elements).Length(2)
		gt.S(t, elements[0].(map[string]any)["text"].(string)).
			Contains("*Pull Request* by").
			Contains("https://github.com/a/b/actions/runs/7|CI/CD")
	})
}

func TestBuildPayloadIsIdempotent(t *testing.T) {
	trigger := prTrigger()
	trigger.Actor = "jdrydn"
	trigger.Workflow = "CI/CD"

	for _, color := range []string{"", "warning"} {
		options := model.MessageOptions{Text: "x", Color: color, Title: "t", ThumbURL: "https://example.com/a.png"}
		p1 := gt.R1(usecase.BuildPayload(trigger, options)).NoError(t)
		p2 := gt.R1(usecase.BuildPayload(trigger, options)).NoError(t)
		gt.Equal(t, testutil.ToMap(t, p1), testutil.ToMap(t, p2))
	}
}

func TestBuildPayloadInvalidContext(t *testing.T) {
	testCases := map[string]func(trigger *model.TriggerContext){
		"no owner": func(trigger *model.TriggerContext) {
			trigger.Owner = ""
		},
		"no repo": func(trigger *model.TriggerContext) {
			trigger.Repo = ""
		},
		"no ref": func(trigger *model.TriggerContext) {
			trigger.Ref = ""
		},
		"no sha": func(trigger *model.TriggerContext) {
			trigger.SHA = ""
		},
		"pr without payload": func(trigger *model.TriggerContext) {
			trigger.EventName = "pull_request"
			trigger.PullRequest = nil
		},
		"pr target without payload": func(trigger *model.TriggerContext) {
			trigger.EventName = "pull_request_target"
		},
	}

	for name, modify := range testCases {
		t.Run(name, func(t *testing.T) {
			trigger := baseTrigger()
			modify(&trigger)

			for _, color := range []string{"", "good"} {
				payload, err := usecase.BuildPayload(trigger, model.MessageOptions{Text: "x", Color: color})
				gt.True(t, errors.Is(err, types.ErrInvalidContext))
				gt.True(t, payload == nil)
			}
		})
	}
}

func TestResolveColor(t *testing.T) {
	testCases := map[string]string{
		"good":    "good",
		"warning": "warning",
		"danger":  "danger",
		"success": "good",
		"FAILURE": "danger",
		"skipped": "#9E9E9E",
		"info":    "#2EB67D",
		"Error":   "danger",
		"1a2b3c":  "#1a2b3c",
		"#1a2b3c": "#1a2b3c",
		"FFF":     "#FFF",
		"purple":  "purple",
		"12345":   "12345",
	}

	for input, expected := range testCases {
		t.Run(input, func(t *testing.T) {
			gt.Equal(t, usecase.ResolveColor(input), expected)
		})
	}
}
