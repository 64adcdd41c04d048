package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/term"

	apiclient "github.com/bharath-kadali/mini-journal/pkg/api/client"
)

type cliConfig struct {
	APIBaseURL string `json:"api_base_url"`
	Token      string `json:"token"`
}

var buildVersion = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "register":
		err = commandRegister(args)
	case "login":
		err = commandLogin(args)
	case "add":
		err = commandAdd(args)
	case "list":
		err = commandList(args)
	case "edit":
		err = commandEdit(args)
	case "rm":
		err = commandRemove(args)
	case "version", "--version", "-v":
		printVersion()
		return
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		err = handleSessionExpiry(err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// handleSessionExpiry clears the cached token on any 401 so the next
// command forces a fresh login instead of retrying a dead session.
func handleSessionExpiry(err error) error {
	var apiErr apiclient.APIError
	if !errors.As(err, &apiErr) || apiErr.Status != 401 {
		return err
	}
	cfg, loadErr := loadConfig()
	if loadErr == nil && cfg.Token != "" {
		cfg.Token = ""
		_ = saveConfig(cfg)
	}
	return fmt.Errorf("session expired or invalid, please run 'journal login' again (%w)", err)
}

func readCredentials(fs *flag.FlagSet, args []string) (string, string, string, error) {
	email := fs.String("email", "", "Email address")
	password := fs.String("password", "", "Password (supply to avoid prompt)")
	apiBase := fs.String("api", "", "API base URL (default http://localhost:4000)")
	fs.Parse(args)

	if strings.TrimSpace(*email) == "" {
		return "", "", "", errors.New("--email is required")
	}
	secret := strings.TrimSpace(*password)
	if secret == "" {
		fmt.Print("Password: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Print("\n")
		if err != nil {
			return "", "", "", fmt.Errorf("read password: %w", err)
		}
		secret = string(raw)
	}
	return *email, secret, *apiBase, nil
}

func commandRegister(args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	email, password, apiBase, err := readCredentials(fs, args)
	if err != nil {
		return err
	}
	cfg, _ := loadConfig()
	if strings.TrimSpace(apiBase) != "" {
		cfg.APIBaseURL = apiBase
	} else if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = "http://localhost:4000"
	}

	client, err := apiclient.New(cfg.APIBaseURL)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	resp, err := client.Register(ctx, email, password)
	if err != nil {
		return err
	}
	cfg.Token = resp.Token
	if err := saveConfig(cfg); err != nil {
		return err
	}
	fmt.Println("account created, you are logged in")
	return nil
}

func commandLogin(args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email, password, apiBase, err := readCredentials(fs, args)
	if err != nil {
		return err
	}
	cfg, _ := loadConfig()
	if strings.TrimSpace(apiBase) != "" {
		cfg.APIBaseURL = apiBase
	} else if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = "http://localhost:4000"
	}

	client, err := apiclient.New(cfg.APIBaseURL)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	resp, err := client.Login(ctx, email, password)
	if err != nil {
		return err
	}
	cfg.Token = resp.Token
	if err := saveConfig(cfg); err != nil {
		return err
	}
	fmt.Println("login successful")
	return nil
}

func authedClient() (*apiclient.Client, string, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, "", err
	}
	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		return nil, "", errors.New("please login first using 'journal login'")
	}
	client, err := apiclient.New(cfg.APIBaseURL)
	if err != nil {
		return nil, "", err
	}
	return client, token, nil
}

func commandAdd(args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	date := fs.String("date", time.Now().Format("2006-01-02"), "Entry date (YYYY-MM-DD)")
	content := fs.String("content", "", "Entry text")
	fs.Parse(args)

	if strings.TrimSpace(*content) == "" {
		return errors.New("--content is required")
	}
	client, token, err := authedClient()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	entry, err := client.CreateEntry(ctx, token, *date, *content)
	if err != nil {
		return err
	}
	fmt.Printf("%s\t%s\t%s\n", entry.ID, entry.Date, entry.Content)
	return nil
}

func commandList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	limit := fs.Int("limit", 0, "Maximum number of entries to display")
	fs.Parse(args)

	client, token, err := authedClient()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	entries, err := client.ListEntries(ctx, token)
	if err != nil {
		return err
	}
	// The server already orders by date; sorting again keeps the display
	// stable even against an older server.
	apiclient.SortEntries(entries)
	count := len(entries)
	if *limit > 0 && *limit < count {
		count = *limit
	}
	for i := 0; i < count; i++ {
		e := entries[i]
		fmt.Printf("%s\t%s\t%s\n", e.ID, e.Date, e.Content)
	}
	return nil
}

func commandEdit(args []string) error {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	id := fs.String("id", "", "Entry identifier")
	content := fs.String("content", "", "Replacement text")
	fs.Parse(args)

	if strings.TrimSpace(*id) == "" {
		return errors.New("--id is required")
	}
	if strings.TrimSpace(*content) == "" {
		return errors.New("--content is required")
	}
	client, token, err := authedClient()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	entry, err := client.UpdateEntry(ctx, token, *id, *content)
	if err != nil {
		return err
	}
	fmt.Printf("%s\t%s\t%s\n", entry.ID, entry.Date, entry.Content)
	return nil
}

func commandRemove(args []string) error {
	fs := flag.NewFlagSet("rm", flag.ExitOnError)
	id := fs.String("id", "", "Entry identifier")
	fs.Parse(args)

	if strings.TrimSpace(*id) == "" {
		return errors.New("--id is required")
	}
	client, token, err := authedClient()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := client.DeleteEntry(ctx, token, *id); err != nil {
		return err
	}
	fmt.Println("entry deleted")
	return nil
}

func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}
	return filepath.Join(home, ".minijournal", "config.json"), nil
}

func loadConfig() (cliConfig, error) {
	var cfg cliConfig
	path, err := configPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func saveConfig(cfg cliConfig) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func printUsage() {
	fmt.Println(`usage: journal <command> [flags]

commands:
  register  create an account and store the session token
  login     authenticate and store the session token
  add       create a dated entry (--date, --content)
  list      show entries, newest date first (--limit)
  edit      replace an entry's text (--id, --content)
  rm        delete an entry (--id)
  version   print version`)
}

func printVersion() {
	fmt.Printf("journal %s\n", buildVersion)
}
