package usecase

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/m-mizutani/actnotify/pkg/domain/model"
	"github.com/slack-go/slack"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var namedColors = map[string]string{
	"good":    "good",
	"warning": "warning",
	"danger":  "danger",

	// job.status values
	"success":   "good",
	"failure":   "danger",
	"cancelled": "warning",
	"skipped":   "#9E9E9E",

	"info":  "#2EB67D",
	"error": "danger",
}

var hexColor = regexp.MustCompile(`^#?(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ResolveColor maps a color input to the value Slack expects in an
// attachment. Unknown values are passed through.
func ResolveColor(color string) string {
	if named, ok := namedColors[strings.ToLower(color)]; ok {
		return named
	}
	if hexColor.MatchString(color) && !strings.HasPrefix(color, "#") {
		return "#" + color
	}
	return color
}

// messageSource holds values derived once from the inputs and shared by all
// setters.
type messageSource struct {
	trigger  model.TriggerContext
	options  model.MessageOptions
	branch   string
	sha      string
	fallback string
}

func newMessageSource(trigger model.TriggerContext, options model.MessageOptions) *messageSource {
	branch, sha := trigger.Source()
	return &messageSource{
		trigger:  trigger,
		options:  options,
		branch:   branch,
		sha:      sha,
		fallback: fmt.Sprintf("[%s/%s] (%s) %s", trigger.Owner, trigger.Repo, branch, options.Text),
	}
}

func (x *messageSource) shortSHA() string {
	if len(x.sha) > 7 {
		return x.sha[:7]
	}
	return x.sha
}

func (x *messageSource) repoName() string { return x.trigger.Owner + "/" + x.trigger.Repo }
func (x *messageSource) treeURL() string  { return x.trigger.RepoURL() + "/tree/" + x.branch }
func (x *messageSource) commitURL() string {
	return x.trigger.RepoURL() + "/commit/" + x.sha
}
func (x *messageSource) actorURL() string {
	return x.trigger.Server() + "/" + x.trigger.Actor
}

// runURL points at the workflow run when its ID is known, otherwise at the
// checks of the commit.
func (x *messageSource) runURL() string {
	if x.trigger.RunID != "" {
		return x.trigger.RepoURL() + "/actions/runs/" + x.trigger.RunID
	}
	return x.commitURL() + "/checks"
}

func (x *messageSource) eventTitle() string {
	if x.trigger.EventName == "" {
		return "Trigger"
	}
	words := strings.NewReplacer("_", " ", "-", " ").Replace(x.trigger.EventName)
	return cases.Title(language.English).String(words)
}

func (x *messageSource) repoLinks() string {
	return fmt.Sprintf("*<%s|%s>* (<%s|%s>)", x.trigger.RepoURL(), x.repoName(), x.treeURL(), x.branch)
}

// BuildPayload converts a trigger context and message options into a Slack
// payload. An attachment is built when a color is given, blocks otherwise.
func BuildPayload(trigger model.TriggerContext, options model.MessageOptions) (*model.Payload, error) {
	if err := trigger.Validate(); err != nil {
		return nil, err
	}

	src := newMessageSource(trigger, options)

	if options.Color != "" {
		var attachment slack.Attachment
		for _, set := range attachmentSetters {
			set(src, &attachment)
		}
		return &model.Payload{
			Attachments: []slack.Attachment{attachment},
		}, nil
	}

	payload := &model.Payload{
		Text: src.fallback,
	}
	for _, build := range blockBuilders {
		if block := build(src); block != nil {
			payload.Blocks = append(payload.Blocks, block)
		}
	}
	return payload, nil
}

type attachmentSetter func(src *messageSource, att *slack.Attachment)

var attachmentSetters = []attachmentSetter{
	setColor,
	setFallback,
	setAuthor,
	setTitle,
	setText,
	setImages,
	setFooter,
}

func setColor(src *messageSource, att *slack.Attachment) {
	att.Color = ResolveColor(src.options.Color)
}

func setFallback(src *messageSource, att *slack.Attachment) {
	att.Fallback = src.fallback
	att.MarkdownIn = []string{"text"}
}

func setAuthor(src *messageSource, att *slack.Attachment) {
	if src.trigger.Actor == "" {
		return
	}
	att.AuthorName = src.trigger.Actor
	att.AuthorLink = src.actorURL()
	att.AuthorIcon = src.actorURL() + ".png"
}

func setTitle(src *messageSource, att *slack.Attachment) {
	switch {
	case src.options.Title != "":
		att.Title = src.options.Title
	case src.trigger.Workflow != "":
		att.Title = fmt.Sprintf("%s (#%s)", src.trigger.Workflow, src.shortSHA())
	default:
		return
	}
	att.TitleLink = src.runURL()
}

func setText(src *messageSource, att *slack.Attachment) {
	att.Text = src.options.Text
}

func setImages(src *messageSource, att *slack.Attachment) {
	if src.options.ImageURL != "" {
		att.ImageURL = src.options.ImageURL
	}
	if src.options.ThumbURL != "" {
		att.ThumbURL = src.options.ThumbURL
	}
}

func setFooter(src *messageSource, att *slack.Attachment) {
	att.Footer = src.repoLinks()
	att.FooterIcon = src.trigger.Server() + "/" + src.trigger.Owner + ".png"
}

// blockBuilder returns nil when the block does not apply.
type blockBuilder func(src *messageSource) slack.Block

var blockBuilders = []blockBuilder{
	headerBlock,
	textBlock,
	imageBlock,
	contextBlock,
}

func headerBlock(src *messageSource) slack.Block {
	if src.options.Title == "" {
		return nil
	}
	txt := slack.NewTextBlockObject(slack.PlainTextType, src.options.Title, false, false)
	return slack.NewHeaderBlock(txt)
}

func textBlock(src *messageSource) slack.Block {
	body := slack.NewTextBlockObject(slack.MarkdownType, src.options.Text, false, false)

	var accessory *slack.Accessory
	if src.options.ThumbURL != "" {
		accessory = slack.NewAccessory(slack.NewImageBlockElement(src.options.ThumbURL, "thumbnail"))
	}
	return slack.NewSectionBlock(body, nil, accessory)
}

func imageBlock(src *messageSource) slack.Block {
	if src.options.ImageURL == "" {
		return nil
	}
	return slack.NewImageBlock(src.options.ImageURL, "image", "", nil)
}

func contextBlock(src *messageSource) slack.Block {
	var elements []slack.MixedElement

	if src.trigger.Actor != "" && src.trigger.Workflow != "" {
		trigger := fmt.Sprintf("*%s* by *<%s|%s>* from *<%s|%s>*",
			src.eventTitle(),
			src.actorURL(), src.trigger.Actor,
			src.runURL(), src.trigger.Workflow,
		)
		elements = append(elements, slack.NewTextBlockObject(slack.MarkdownType, trigger, false, false))
	}

	links := fmt.Sprintf("%s (<%s|#%s>)", src.repoLinks(), src.commitURL(), src.shortSHA())
	elements = append(elements, slack.NewTextBlockObject(slack.MarkdownType, links, false, false))

	return slack.NewContextBlock("", elements...)
}
