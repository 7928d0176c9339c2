package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/deebers/bookiebot/internal/analytics"
	"github.com/deebers/bookiebot/internal/bot"
	"github.com/deebers/bookiebot/internal/config"
	"github.com/deebers/bookiebot/internal/intents"
	"github.com/deebers/bookiebot/internal/logger"
	"github.com/deebers/bookiebot/internal/money"
	"github.com/deebers/bookiebot/internal/sheets"
	"github.com/deebers/bookiebot/internal/writer"
)

func main() {
	log := logger.New()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "chat":
		runChat(log)
	case "ask":
		runAsk(log)
	case "intents":
		runIntents()
	case "describe":
		runDescribe()
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("BookieBot")
	fmt.Println("\nUsage:")
	fmt.Println("  bookiebot <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  chat      Interactive ledger chat session")
	fmt.Println("  ask       Ask a single question and exit")
	fmt.Println("  intents   Browse the intent catalog")
	fmt.Println("  describe  Describe one intent by number")
	fmt.Println("  help      Show this help message")
	fmt.Println("\nRun 'bookiebot <command> -h' for more information on a command.")
}

// buildBot wires configuration, sheets, and the model into a ready bot.
func buildBot(ctx context.Context, log zerolog.Logger) (*bot.Bot, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.RequireSheets(); err != nil {
		return nil, err
	}

	client, err := sheets.NewClient(ctx, []byte(cfg.ServiceAccountJSON))
	if err != nil {
		return nil, err
	}
	clock := money.NewClock()
	repo := sheets.NewGoogleRepository(client, cfg.ExpenseSheetKey, cfg.IncomeSheetKey, clock)

	completer := intents.NewGeminiCompleter(cfg.ModelName)
	resolver := intents.NewResolver(completer, clock)
	engine := analytics.New(repo, clock)
	w := writer.New(repo, clock)

	return bot.New(cfg, log, resolver, engine, w, completer, clock), nil
}

func runChat(log zerolog.Logger) {
	fs := flag.NewFlagSet("chat", flag.ExitOnError)
	user := fs.String("user", "", "chat username to act as")
	userID := fs.String("user-id", "", "chat user ID to act as")
	fs.Parse(os.Args[2:])

	ctx := logger.WithContext(context.Background(), log)
	b, err := buildBot(ctx, log)
	if err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}

	fmt.Println("BookieBot ready. Type 'list' to see intents, 'quit' to exit.")
	scanner := bufio.NewScanner(os.Stdin)
	var pending bot.Reply
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if text == "quit" || text == "exit" {
			break
		}

		msg := bot.Message{Text: text, User: *user, UserID: *userID, Mention: "@" + *user}
		reqCtx, cancel := context.WithTimeout(ctx, time.Minute)
		var reply bot.Reply
		if len(pending.Choices) > 0 {
			reply = b.ResolveChoice(reqCtx, msg, pending.Token, pickChoice(text, pending.Choices))
			pending = bot.Reply{}
		} else {
			reply = b.HandleMessage(reqCtx, msg)
		}
		cancel()

		fmt.Println(reply.Text)
		if len(reply.Choices) > 0 {
			for i, c := range reply.Choices {
				fmt.Printf("  %d. %s\n", i+1, c)
			}
			pending = reply
		}
	}
}

// pickChoice resolves a typed answer to one of the offered choices, by
// number or by name. Unmatched input is passed through so the bot can
// reject it.
func pickChoice(text string, choices []string) string {
	if n, err := strconv.Atoi(text); err == nil && n >= 1 && n <= len(choices) {
		return choices[n-1]
	}
	return text
}

func runAsk(log zerolog.Logger) {
	fs := flag.NewFlagSet("ask", flag.ExitOnError)
	user := fs.String("user", "", "chat username to act as")
	userID := fs.String("user-id", "", "chat user ID to act as")
	fs.Parse(os.Args[2:])

	if fs.NArg() == 0 {
		log.Fatal().Msg("Error: a question is required")
	}
	question := strings.Join(fs.Args(), " ")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	b, err := buildBot(ctx, log)
	if err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}

	reply := b.HandleMessage(ctx, bot.Message{Text: question, User: *user, UserID: *userID})
	fmt.Println(reply.Text)
	for i, c := range reply.Choices {
		fmt.Printf("  %d. %s\n", i+1, c)
	}
}

func runDescribe() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Usage: bookiebot describe <number>")
		os.Exit(1)
	}
	n, err := strconv.Atoi(os.Args[2])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Not a number: %s\n", os.Args[2])
		os.Exit(1)
	}
	fmt.Println(intents.DescribeIntent(n))
}

// runIntents browses the catalog without touching the network.
func runIntents() {
	fmt.Println(intents.ListIntents())
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		text := strings.TrimSpace(scanner.Text())
		switch {
		case text == "quit" || text == "exit":
			return
		case text == "list":
			fmt.Println(intents.ListIntents())
		default:
			if n, err := strconv.Atoi(text); err == nil {
				fmt.Println(intents.DescribeIntent(n))
			}
		}
	}
}
