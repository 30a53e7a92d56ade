package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/craftviz/craftviz/pkg/cache"
	"github.com/craftviz/craftviz/pkg/config"
	"github.com/craftviz/craftviz/pkg/databank"
	"github.com/craftviz/craftviz/pkg/errors"
	"github.com/craftviz/craftviz/pkg/graph"
	"github.com/craftviz/craftviz/pkg/graph/view"
	"github.com/craftviz/craftviz/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output      string  // output file (single format) or base path
	pick        bool    // choose the target object interactively
	noCache     bool    // skip the artifact cache
	scale       float64 // PNG scale factor
	maxDistance int     // ancestor climb radius
	natural     string  // parent mode for natural objects
	categories  string  // parent mode for categories
	parents     string  // parent mode for everything else
}

// renderCommand creates the render command for generating craft trees.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <databank> [object-id]",
		Short: "Render the craft tree leading to an object",
		Long: `Render reads a databank directory, builds the crafting graph, and writes
the tree of everything leading to the given object. Without an object id,
--pick opens an interactive selector.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if formatsStr == "" {
				formatsStr = c.Config.Render.Format
			}
			if !cmd.Flags().Changed("scale") && c.Config.Render.Scale > 0 {
				opts.scale = c.Config.Render.Scale
			}
			formats := parseFormats(formatsStr)
			if err := validateFormats(formats); err != nil {
				return err
			}
			viewOpts, err := c.viewOptions(cmd, &opts)
			if err != nil {
				return err
			}
			return c.runRender(cmd, args, formats, viewOpts, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, json, png, pdf (comma-separated)")
	cmd.Flags().BoolVar(&opts.pick, "pick", false, "pick the target object interactively")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "skip the artifact cache")
	cmd.Flags().Float64Var(&opts.scale, "scale", 2.0, "PNG scale factor")
	cmd.Flags().IntVar(&opts.maxDistance, "max-distance", 50, "ancestor climb radius (0 = unbounded)")
	cmd.Flags().StringVar(&opts.natural, "natural", "", "parent mode for natural objects: none, least-complex, existing, all")
	cmd.Flags().StringVar(&opts.categories, "categories", "", "parent mode for category objects")
	cmd.Flags().StringVar(&opts.parents, "parents", "", "parent mode for everything else")

	return cmd
}

// viewOptions merges the config file view settings with explicit flags.
func (c *CLI) viewOptions(cmd *cobra.Command, opts *renderOpts) (view.Options, error) {
	viewOpts, err := c.Config.ViewOptions()
	if err != nil {
		return viewOpts, err
	}

	flags := cmd.Flags()
	if flags.Changed("max-distance") {
		viewOpts.MaxDistance = opts.maxDistance
	}
	if flags.Changed("natural") {
		if viewOpts.Natural, err = config.ParentMode(opts.natural); err != nil {
			return viewOpts, err
		}
	}
	if flags.Changed("categories") {
		if viewOpts.Categories, err = config.ParentMode(opts.categories); err != nil {
			return viewOpts, err
		}
	}
	if flags.Changed("parents") {
		if viewOpts.Default, err = config.ParentMode(opts.parents); err != nil {
			return viewOpts, err
		}
	}
	return viewOpts, nil
}

// loadGraph loads a databank directory and builds its crafting graph.
func (c *CLI) loadGraph(ctx context.Context, dir string) (*databank.Databank, *graph.Graph, error) {
	sp := newSpinner(ctx, fmt.Sprintf("Loading databank %s", dir))
	sp.Start()
	bank, err := databank.Load(dir)
	sp.Stop()
	if err != nil {
		return nil, nil, err
	}
	if sp.Cancelled() {
		return nil, nil, ctx.Err()
	}

	p := newProgress(c.Logger)
	g, err := graph.Build(bank, c.Logger)
	if err != nil {
		return nil, nil, err
	}
	p.done(fmt.Sprintf("Built graph: %d nodes, %d edges", g.NodeCount(), g.EdgeCount()))
	return bank, g, nil
}

func (c *CLI) runRender(cmd *cobra.Command, args []string, formats []string, viewOpts view.Options, opts *renderOpts) error {
	ctx := cmd.Context()

	bank, g, err := c.loadGraph(ctx, args[0])
	if err != nil {
		return err
	}

	objID, err := c.targetObject(args, opts.pick, bank, g)
	if err != nil {
		return err
	}

	artifacts := c.newCache(cmd, opts.noCache)
	defer artifacts.Close()
	keyer := cache.NewDefaultKeyer()
	bankHash := bank.Fingerprint()
	ttl := time.Duration(c.Config.Cache.TTLHours) * time.Hour

	allCached := true
	for _, format := range formats {
		key := keyer.ArtifactKey(bankHash, objID, cache.ArtifactKeyOpts{
			Format:      format,
			Scale:       opts.scale,
			MaxDistance: viewOpts.MaxDistance,
			Natural:     viewOpts.Natural.String(),
			Categories:  viewOpts.Categories.String(),
			Default:     viewOpts.Default.String(),
		})

		data, hit, err := artifacts.Get(ctx, key)
		if err != nil || !hit {
			allCached = false
			if data, err = c.renderArtifact(ctx, g, objID, format, viewOpts, opts.scale); err != nil {
				return err
			}
			if err := artifacts.Set(ctx, key, data, ttl); err != nil {
				c.Logger.Warnf("cache artifact: %v", err)
			}
		}

		path := outputPath(opts.output, objID, format, len(formats) > 1)
		if err := os.WriteFile(path, data, 0644); err != nil {
			return err
		}
		printFile(path)
	}

	name := "?"
	if obj, ok := bank.Objects[objID]; ok {
		name = obj.Name
	}
	printSuccess("Rendered craft tree for %d (%s)", objID, name)
	printStats(g.NodeCount(), g.EdgeCount(), allCached)
	return nil
}

// targetObject resolves the object to render from the positional argument
// or the interactive picker.
func (c *CLI) targetObject(args []string, pick bool, bank *databank.Databank, g *graph.Graph) (int, error) {
	if len(args) == 2 {
		id, err := strconv.Atoi(args[1])
		if err != nil {
			return 0, errors.New(errors.ErrCodeInvalidInput, "object id must be a number, got %q", args[1])
		}
		if _, ok := bank.Objects[id]; !ok {
			return 0, errors.New(errors.ErrCodeUnknownObject, "no object with id %d", id)
		}
		return id, nil
	}
	if pick {
		return pickObject(g)
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "object id required (or use --pick)")
}

// renderArtifact runs the view and render pipeline for one format.
func (c *CLI) renderArtifact(ctx context.Context, g *graph.Graph, objID int, format string, viewOpts view.Options, scale float64) ([]byte, error) {
	v := view.New(g, viewOpts)
	if err := v.LeadingTo(objID); err != nil {
		return nil, err
	}
	layout := v.Layout()
	if format == "json" {
		return render.ToJSON(layout)
	}
	dot := render.ToDOT(layout)

	switch format {
	case "dot":
		return []byte(dot), nil
	case "svg":
		return render.RenderSVG(ctx, dot)
	case "png":
		return render.RenderPNG(ctx, dot, scale)
	default:
		return render.RenderPDF(ctx, dot)
	}
}

// outputPath derives the file path for one rendered format.
func outputPath(output string, objID int, format string, multiple bool) string {
	if output == "" {
		return fmt.Sprintf("object_%d.%s", objID, format)
	}
	if !multiple {
		return output
	}
	ext := filepath.Ext(output)
	if validFormats[strings.TrimPrefix(ext, ".")] {
		output = strings.TrimSuffix(output, ext)
	}
	return output + "." + format
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{"svg"}
	}
	return strings.Split(s, ",")
}

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{"dot": true, "svg": true, "pdf": true, "png": true, "json": true}

// validateFormats checks that all requested formats are valid.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if !validFormats[f] {
			return errors.New(errors.ErrCodeInvalidInput,
				"invalid format: %s (must be 'dot', 'json', 'svg', 'pdf', or 'png')", f)
		}
	}
	return nil
}
