package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	client "github.com/chatterbox-ai/chatterbox-client/client"
	"github.com/chatterbox-ai/chatterbox-client/conversation"
	"github.com/chatterbox-ai/chatterbox-client/internal/config"
	"github.com/chatterbox-ai/chatterbox-client/session"
)

var serviceURL string
var debug bool

const requestTimeout = 15 * time.Second

// readPassword is a seam so tests can feed passwords without a TTY.
var readPassword = func(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "chatterbox",
		Short: "Chatterbox CLI for chatting with configurable characters",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.InitLogger()

			if debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
				os.Setenv("CHATTERBOX_DEBUG", "true")
				log.Debug().Msg("debug logging enabled")
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
		},
	}

	defaultURL := getEnv("CHATTERBOX_SERVICE_URL", "http://localhost:3003")
	rootCmd.PersistentFlags().StringVar(&serviceURL, "service-url", defaultURL, "Base URL of the chatbot backend")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable verbose debug output")

	rootCmd.AddCommand(newSignupCmd())
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newWhoamiCmd())
	rootCmd.AddCommand(newCharactersCmd())
	rootCmd.AddCommand(newChatCmd())

	return rootCmd
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// sessionStore resolves the durable session file from configuration.
func sessionStore() (session.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return session.NewFileStore(cfg.SessionFile), nil
}

func newSignupCmd() *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Register a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword("Password: ")
			if err != nil {
				return err
			}

			store, err := sessionStore()
			if err != nil {
				return err
			}
			c := client.New(serviceURL, store, client.WithoutExecutor())
			defer func() { _ = c.Close() }()

			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			user, err := c.Signup(ctx, client.SignupRequest{UserName: username, UserPassword: password})
			if err != nil {
				log.Error().Err(err).Str("user_name", username).Msg("signup failed")
				return err
			}
			fmt.Printf("Account created: %s\n", user.UserName)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Account username (required)")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func newLoginCmd() *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to an existing account",
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword("Password: ")
			if err != nil {
				return err
			}

			store, err := sessionStore()
			if err != nil {
				return err
			}
			c := client.New(serviceURL, store, client.WithoutExecutor())
			defer func() { _ = c.Close() }()

			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			user, err := c.Login(ctx, client.LoginRequest{UserName: username, UserPassword: password})
			if err != nil {
				if client.IsUnauthorized(err) {
					fmt.Fprintln(os.Stderr, "Invalid username or password.")
				} else if client.IsTransport(err) {
					fmt.Fprintln(os.Stderr, "Could not reach the server. Check --service-url and try again.")
				}
				return err
			}
			fmt.Printf("signed in as %s\n", user.UserName)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Account username (required)")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := sessionStore()
			if err != nil {
				return err
			}
			c := client.New(serviceURL, store, client.WithoutExecutor())
			defer func() { _ = c.Close() }()

			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			if err := c.Logout(ctx); err != nil {
				return err
			}
			fmt.Println("Signed out.")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := sessionStore()
			if err != nil {
				return err
			}
			sess, err := session.FromStore(store)
			if err != nil {
				return err
			}
			if !sess.LoggedIn() {
				fmt.Println("Not signed in.")
				return nil
			}
			fmt.Println(sess.Username())
			return nil
		},
	}
}

func newCharactersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "characters",
		Short: "Manage chatbot characters",
	}
	cmd.AddCommand(newCharactersListCmd())
	cmd.AddCommand(newCharactersCreateCmd())
	return cmd
}

func newCharactersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available characters",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := sessionStore()
			if err != nil {
				return err
			}
			c := client.New(serviceURL, store, client.WithoutExecutor())
			defer func() { _ = c.Close() }()

			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			chars, err := c.ListCharacters(ctx)
			if err != nil {
				if client.IsUnauthorized(err) {
					fmt.Fprintln(os.Stderr, "Not signed in. Run `chatterbox login` first.")
				}
				return err
			}
			if len(chars) == 0 {
				fmt.Println("No characters yet. Create one with `chatterbox characters create`.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPROMPT")
			for _, ch := range chars {
				fmt.Fprintf(w, "%s\t%s\t%s\n", ch.ID, ch.Name, truncate(ch.Prompt, 60))
			}
			return w.Flush()
		},
	}
}

func newCharactersCreateCmd() *cobra.Command {
	var name, prompt, imagePath string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new character",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := client.CreateCharacterRequest{Name: name, Prompt: prompt}
			if imagePath != "" {
				data, err := os.ReadFile(imagePath)
				if err != nil {
					return fmt.Errorf("read image: %w", err)
				}
				req.Image = data
				req.ImageFilename = filepath.Base(imagePath)
			}

			store, err := sessionStore()
			if err != nil {
				return err
			}
			c := client.New(serviceURL, store, client.WithoutExecutor())
			defer func() { _ = c.Close() }()

			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			ch, err := c.CreateCharacter(ctx, req)
			if err != nil {
				log.Error().Err(err).Str("character_name", name).Msg("create character failed")
				return err
			}
			fmt.Printf("Character created: %s (%s)\n", ch.Name, ch.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Character name (required)")
	cmd.Flags().StringVar(&prompt, "prompt", "", "Character system prompt (required)")
	cmd.Flags().StringVar(&imagePath, "image", "", "Path to a character image (optional)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("prompt")
	return cmd
}

func newChatCmd() *cobra.Command {
	var characterID string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat interactively with a character",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			store := session.NewFileStore(cfg.SessionFile)
			sess, err := session.FromStore(store)
			if err != nil {
				return err
			}
			if !sess.LoggedIn() {
				fmt.Fprintln(os.Stderr, "Not signed in. Run `chatterbox login` first.")
				return fmt.Errorf("no active session")
			}

			if characterID == "" {
				// Mirrors the view behavior: show the notice, then drop the
				// user back "home" after the configured delay.
				home := make(chan struct{})
				mgr := conversation.NewManager(noChatter{}, sess.Username(),
					conversation.WithRedirectDelay(cfg.RedirectDelay),
					conversation.WithRedirectHome(func() { close(home) }),
				)
				mgr.EnterWithoutCharacter()
				fmt.Fprintf(os.Stderr, "%s\n", mgr.Notice())
				<-home
				return nil
			}

			var opts []client.Option
			if cfg.AssetURL != "" {
				opts = append(opts, client.WithAssetBaseURL(cfg.AssetURL))
			}
			c := client.New(serviceURL, store, opts...)
			defer func() { _ = c.Close() }()

			return runChat(cmd.Context(), c, sess.Username(), characterID, os.Stdin, os.Stdout)
		},
	}

	cmd.Flags().StringVar(&characterID, "character-id", "", "Character to chat with")
	return cmd
}

// noChatter backs the no-character path, which never reaches the network.
type noChatter struct{}

func (noChatter) FetchConversation(context.Context, string) ([]client.HistoryMessage, error) {
	return nil, nil
}

func (noChatter) EnqueueChatTurn(context.Context, string, string, func(string, error)) error {
	return nil
}

// runChat drives the interactive loop: load or synthesize the opening
// transcript, then alternate user lines and bot replies until EOF.
func runChat(ctx context.Context, c *client.Client, username, characterID string, in io.Reader, out io.Writer) error {
	chars, err := c.ListCharacters(ctx)
	if err != nil {
		return err
	}
	var name string
	for _, ch := range chars {
		if ch.ID == characterID {
			name = ch.Name
			break
		}
	}
	if name == "" {
		return fmt.Errorf("unknown character %q", characterID)
	}

	mgr := conversation.NewManager(c, username)
	if err := mgr.SelectCharacter(ctx, characterID, name, ""); err != nil {
		return err
	}
	if notice := mgr.Notice(); notice != "" {
		fmt.Fprintf(out, "! %s\n", notice)
	}

	printed := printTranscript(out, name, mgr.Messages(), 0)

	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, "> ")
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "/quit" {
			break
		}
		if mgr.SendMessage(ctx, line) {
			waitCtx, cancel := context.WithTimeout(ctx, requestTimeout)
			err := c.AwaitIdle(waitCtx, characterID)
			cancel()
			if err != nil {
				return err
			}
			printed = printTranscript(out, name, mgr.Messages(), printed)
		}
		fmt.Fprint(out, "> ")
	}
	return scanner.Err()
}

// printTranscript prints messages beyond the first `skip` and returns the new
// count of printed messages.
func printTranscript(out io.Writer, characterName string, msgs []conversation.Message, skip int) int {
	for _, msg := range msgs[skip:] {
		speaker := "you"
		if msg.Sender == conversation.SenderBot {
			speaker = characterName
		}
		fmt.Fprintf(out, "%s: %s\n", speaker, msg.Text)
	}
	return len(msgs)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
