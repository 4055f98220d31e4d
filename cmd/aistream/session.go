package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"text/tabwriter"

	"github.com/zerocore/aistream/core/client"
	"github.com/zerocore/aistream/internal/config"
	"github.com/zerocore/aistream/internal/profiles"
	"github.com/zerocore/aistream/providers/ai"
	"github.com/zerocore/aistream/providers/memory"
	"github.com/zerocore/aistream/providers/observability"
)

// session is one terminal chat: a profile, a history and the shared client.
type session struct {
	client   *client.Client
	registry *ai.Registry
	observer observability.Provider
	history  memory.Provider
	cfg      config.ChatConfig
	model    string
	stdout   io.Writer
	stderr   io.Writer

	// profilesPath is where /default writes the updated set.
	profilesPath string

	mu      sync.RWMutex
	set     *profiles.Set
	profile ai.ProviderProfile
}

// useProfiles installs a profile set and selects a profile from it.
func (s *session) useProfiles(set *profiles.Set, selection string) error {
	profile, err := set.Select(selection)
	if err != nil {
		return err
	}
	if s.model != "" {
		profile.ModelName = s.model
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.set = set
	s.profile = profile
	return nil
}

func (s *session) currentProfile() ai.ProviderProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// watchProfiles keeps the session on the latest profiles file. A reload that
// fails or no longer contains the selection leaves the current profile in use.
func (s *session) watchProfiles(ctx context.Context, path, selection string) {
	err := profiles.Watch(ctx, path, func(set *profiles.Set, err error) {
		if err != nil {
			s.observer.Warn(ctx, "Profiles reload failed", observability.Error(err))
			return
		}
		if err := s.reloadProfiles(set, selection); err != nil {
			s.observer.Warn(ctx, "Profiles reload kept previous profile", observability.Error(err))
			return
		}
		s.observer.Info(ctx, "Profiles reloaded",
			observability.Int("profiles.count", set.Len()),
			observability.String(observability.AttrProfileName, s.currentProfile().Name),
		)
	})
	if err != nil {
		s.observer.Error(ctx, "Profiles watcher stopped", observability.Error(err))
	}
}

// reloadProfiles switches to a reloaded set, staying on the current profile
// when it is still there (by id, then by name) and falling back to the
// startup selection otherwise.
func (s *session) reloadProfiles(set *profiles.Set, selection string) error {
	current := s.currentProfile()
	target := selection
	if _, ok := set.ByID(current.ID); ok {
		target = current.ID
	} else if _, ok := set.ByName(current.Name); ok {
		target = current.Name
	}
	return s.useProfiles(set, target)
}

// ask sends prompt with the conversation so far and prints the reply. The
// user turn is kept in history only when the ask succeeds.
func (s *session) ask(ctx context.Context, prompt string) error {
	profile := s.currentProfile()
	provider := s.registry.ForProfile(profile)

	s.history.AppendMessage(ctx, ai.Message{Role: ai.RoleUser, Content: prompt})
	conversation, err := s.history.Messages(ctx, s.cfg.HistoryLimit)
	if err != nil {
		return err
	}

	var reply strings.Builder
	if s.cfg.Stream {
		err = s.client.Stream(ctx, provider, profile, conversation, s.cfg.SystemPrompt).Each(func(delta string) {
			reply.WriteString(delta)
			fmt.Fprint(s.stdout, delta)
		})
		if reply.Len() > 0 {
			fmt.Fprintln(s.stdout)
		}
	} else {
		var text string
		text, err = s.client.Complete(ctx, provider, profile, conversation, s.cfg.SystemPrompt)
		if err == nil {
			reply.WriteString(text)
			fmt.Fprintln(s.stdout, text)
		}
	}

	if err != nil {
		_, _ = s.history.PopLastMessage(ctx)
		fmt.Fprintln(s.stderr, err)
		return err
	}
	s.history.AppendMessage(ctx, ai.Message{Role: ai.RoleAssistant, Content: reply.String()})
	return nil
}

// repl reads prompts line by line until EOF, /exit or cancellation.
// Lines starting with "/" are commands.
func (s *session) repl(ctx context.Context, stdin io.Reader) int {
	scanner := bufio.NewScanner(stdin)
	s.prompt()
	for scanner.Scan() {
		if ctx.Err() != nil {
			return exitOK
		}
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
		case line == "/exit" || line == "/quit":
			return exitOK
		case line == "/clear":
			s.history.ClearMessages(ctx)
			fmt.Fprintln(s.stderr, "history cleared")
		case strings.HasPrefix(line, "/profile"):
			s.switchProfile(strings.TrimSpace(strings.TrimPrefix(line, "/profile")))
		case strings.HasPrefix(line, "/default"):
			s.saveDefault(strings.TrimSpace(strings.TrimPrefix(line, "/default")))
		case strings.HasPrefix(line, "/"):
			fmt.Fprintf(s.stderr, "unknown command %s (try /profile, /default, /clear, /exit)\n", line)
		default:
			// errors are already printed; the loop continues with the next prompt
			_ = s.ask(ctx, line)
		}
		s.prompt()
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintln(s.stderr, err)
		return exitError
	}
	return exitOK
}

func (s *session) prompt() {
	fmt.Fprintf(s.stderr, "%s> ", s.currentProfile().Name)
}

func (s *session) switchProfile(selection string) {
	s.mu.RLock()
	set := s.set
	s.mu.RUnlock()

	if selection == "" {
		listProfiles(s.stderr, s.registry, set)
		return
	}
	if err := s.useProfiles(set, selection); err != nil {
		fmt.Fprintln(s.stderr, err)
		return
	}
	fmt.Fprintf(s.stderr, "using %s\n", s.currentProfile().Name)
}

// saveDefault marks a profile as the default and writes the profiles file.
// An empty selection means the profile in use.
func (s *session) saveDefault(selection string) {
	s.mu.RLock()
	set := s.set
	s.mu.RUnlock()

	if selection == "" {
		selection = s.currentProfile().ID
	}
	updated, err := set.WithDefault(selection)
	if err != nil {
		fmt.Fprintln(s.stderr, err)
		return
	}
	if err := updated.Save(s.profilesPath); err != nil {
		fmt.Fprintln(s.stderr, err)
		return
	}

	s.mu.Lock()
	s.set = updated
	s.mu.Unlock()

	profile, _ := updated.Default()
	fmt.Fprintf(s.stderr, "default is now %s (saved to %s)\n", profile.Name, s.profilesPath)
}

// listProfiles prints one row per profile with its provider's display name,
// then the formats a profile may use.
func listProfiles(out io.Writer, registry *ai.Registry, set *profiles.Set) {
	defaultProfile, _ := set.Default()
	writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "NAME\tPROVIDER\tMODEL\tDEFAULT")
	for _, profile := range set.All() {
		mark := ""
		if profile.ID == defaultProfile.ID {
			mark = "*"
		}
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n", profile.Name, registry.ForProfile(profile).DisplayName(), profile.ModelName, mark)
	}
	_ = writer.Flush()

	providers := registry.Providers()
	formats := make([]string, 0, len(providers))
	for _, provider := range providers {
		formats = append(formats, fmt.Sprintf("%s (%s)", provider.FormatType(), provider.DisplayName()))
	}
	fmt.Fprintf(out, "\nformats: %s\n", strings.Join(formats, ", "))
}

func joinArgs(args []string) string {
	return strings.Join(args, " ")
}
