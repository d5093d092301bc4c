package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-portfolio/internal/chat"
	"github.com/vovakirdan/tui-portfolio/internal/markup"
	"github.com/vovakirdan/tui-portfolio/internal/platform/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat [question]",
	Short: "Talk to the assistant",
	Long: `Ask the assistant about the résumé without playing.

With a question, prints one answer and exits. Without one, starts a
conversation; type exit or press Ctrl+D to leave.

Needs OPENAI_API_KEY in the environment or in the --env-file.

Examples:
  portfolio chat "What languages does Alex use?"
  portfolio chat`,
	Run: runChat,
}

var (
	youStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	botStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	hintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func runChat(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	prof := loadProfile()
	logger := newLogger("portfolio-chat")
	assistant := newAssistant(cfg, prof, logger)
	name := cfg.Chat.AssistantName

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	printReply := func(text string) {
		fmt.Println(botStyle.Render(name))
		fmt.Println(tui.RenderMarkup(markup.Render(text)))
		fmt.Println()
	}

	if len(args) > 0 {
		reply, _ := assistant.Ask(ctx, strings.Join(args, " "))
		printReply(reply)
		return
	}

	if greeting, ok := assistant.Conversation().Last(chat.RoleAssistant); ok {
		printReply(greeting.Content)
	}
	fmt.Println(hintStyle.Render("Type a question, or exit to leave."))

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(youStyle.Render("You") + " › ")
		if !scanner.Scan() {
			fmt.Println()
			return
		}
		question := strings.TrimSpace(scanner.Text())
		switch question {
		case "":
			continue
		case "exit", "quit":
			return
		}

		reply, _ := ask(ctx, assistant, question)
		printReply(reply)
		if ctx.Err() != nil {
			return
		}
	}
}

func ask(ctx context.Context, a *chat.Assistant, question string) (string, bool) {
	fmt.Println(hintStyle.Render("thinking..."))
	return a.Ask(ctx, question)
}
