package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/miekg/dns"
	"github.com/spf13/cobra"
)

var importStrict bool

var importCmd = &cobra.Command{
	Use:   "import <group-id> <file|->",
	Short: "Load newline-separated domains into a group",
	Long: `Load newline-separated domains into a group.

Blank lines and lines starting with # are ignored. Domains already stored
for the group are skipped. Names that are not valid DNS names are reported;
with --strict they are also left out.

Examples:
  subprofiler import 42 domains.txt
  dig axfr example.com | awk '{print $1}' | subprofiler import 42 -`,
	Args: cobra.ExactArgs(2),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importStrict, "strict", false,
		"Drop names that are not valid DNS names")
}

type domainImporter interface {
	ImportDomains(projectID string, names []string) (int, error)
}

type importResult struct {
	read    int
	added   int
	invalid []string
}

func runImport(cmd *cobra.Command, args []string) error {
	env, err := openEnvironment("import")
	if err != nil {
		return err
	}
	defer env.Close()

	var in io.Reader = cmd.InOrStdin()
	if args[1] != "-" {
		f, err := os.Open(args[1])
		if err != nil {
			return trackCLIError("import", fmt.Errorf("open input: %w", err))
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	res, err := importDomains(env.database, args[0], in, importStrict, logWriter{})
	if err != nil {
		return trackCLIError("import", err)
	}

	telemetryClient.TrackDomainsImported(res.added, len(res.invalid))
	return nil
}

// readDomainLines returns the non-empty, non-comment lines of r.
func readDomainLines(r io.Reader) ([]string, error) {
	var names []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return names, nil
}

// importDomains validates the names read from r and stores them under group.
func importDomains(store domainImporter, group string, r io.Reader, strict bool, w io.Writer) (*importResult, error) {
	names, err := readDomainLines(r)
	if err != nil {
		return nil, err
	}

	res := &importResult{read: len(names)}
	keep := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := dns.IsDomainName(name); !ok {
			res.invalid = append(res.invalid, name)
			_, _ = fmt.Fprintf(w, "  %s %s\n", failStyle.Render("invalid:"), name)
			if strict {
				continue
			}
		}
		keep = append(keep, name)
	}

	res.added, err = store.ImportDomains(group, keep)
	if err != nil {
		return nil, fmt.Errorf("import domains: %w", err)
	}

	_, _ = fmt.Fprintf(w, "Imported %d new domain(s) into group %s (%d read, %d invalid)\n",
		res.added, group, res.read, len(res.invalid))
	return res, nil
}
