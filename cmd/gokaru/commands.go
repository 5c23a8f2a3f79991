package main

import (
	"fmt"
	"net/url"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tendant/gokaru-go/pkg/gokaru"
	"github.com/tendant/gokaru-go/pkg/gokaru/config"
)

// NewUploadCommand creates the upload command
func NewUploadCommand() *cobra.Command {
	var sourceType, category, name string
	var randomName bool

	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a local file to the origin",
		Long: `Upload a local file to the origin under (type, category, name).

The stored name defaults to the base name of the local file. --random-name
stores it under a generated UUID that keeps the file extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := args[0]
			stored := name
			if stored == "" {
				stored = filepath.Base(source)
			}
			if randomName {
				stored = uuid.NewString() + filepath.Ext(source)
			}

			client, err := NewClientFromFlags(cmd)
			if err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}
			if err := client.Upload(cmd.Context(), source, gokaru.SourceType(sourceType), category, stored); err != nil {
				return err
			}

			origin, _ := client.Origin(gokaru.SourceType(sourceType), category, stored)
			fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %s\n", source)
			fmt.Fprintf(cmd.OutOrStdout(), "Name: %s\n", stored)
			fmt.Fprintf(cmd.OutOrStdout(), "Origin URL: %s\n", origin)
			return nil
		},
	}

	cmd.Flags().StringVarP(&sourceType, "type", "t", string(gokaru.SourceTypeImage), "source type: image or file")
	cmd.Flags().StringVar(&category, "category", "", "category (namespace) of the stored file")
	cmd.Flags().StringVar(&name, "name", "", "stored file name (default: base name of <file>)")
	cmd.Flags().BoolVar(&randomName, "random-name", false, "store under a generated UUID name")
	cmd.MarkFlagsMutuallyExclusive("name", "random-name")

	return cmd
}

// NewDeleteCommand creates the delete command
func NewDeleteCommand() *cobra.Command {
	var sourceType, category string

	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete an origin file and its thumbnails",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := NewClientFromFlags(cmd)
			if err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}
			if err := client.Delete(cmd.Context(), gokaru.SourceType(sourceType), category, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s/%s/%s\n", sourceType, category, args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&sourceType, "type", "t", string(gokaru.SourceTypeImage), "source type: image or file")
	cmd.Flags().StringVar(&category, "category", "", "category of the stored file")

	return cmd
}

// NewOriginCommand creates the origin command
func NewOriginCommand() *cobra.Command {
	var sourceType, category string

	cmd := &cobra.Command{
		Use:   "origin <name>",
		Short: "Print the origin API URL of a stored file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := NewClientFromFlags(cmd)
			if err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}
			u, err := client.Origin(gokaru.SourceType(sourceType), category, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), u)
			return nil
		},
	}

	cmd.Flags().StringVarP(&sourceType, "type", "t", string(gokaru.SourceTypeImage), "source type: image or file")
	cmd.Flags().StringVar(&category, "category", "", "category of the stored file")

	return cmd
}

// NewFileCommand creates the file command
func NewFileCommand() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "file <name>",
		Short: "Print the public URL of a stored file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := NewClientFromFlags(cmd)
			if err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}
			u, err := client.File(category, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), u)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "category of the stored file")

	return cmd
}

// thumbnailFlags are shared by the thumbnail and sign commands.
type thumbnailFlags struct {
	category  string
	extension string
	width     int
	height    int
	cast      string
}

func (f *thumbnailFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.category, "category", "", "category of the stored image")
	cmd.Flags().StringVarP(&f.extension, "ext", "e", "", "output format extension, e.g. jpg or webp")
	cmd.Flags().IntVarP(&f.width, "width", "W", 0, "target width (0 lets the service decide)")
	cmd.Flags().IntVarP(&f.height, "height", "H", 0, "target height (0 lets the service decide)")
	cmd.Flags().StringVar(&f.cast, "cast", "", "cast flags: decimal value or names such as resize_inverse,trim")
}

// NewThumbnailCommand creates the thumbnail command
func NewThumbnailCommand() *cobra.Command {
	var flags thumbnailFlags
	var tokenOnly bool

	cmd := &cobra.Command{
		Use:   "thumbnail <name>",
		Short: "Print a signed thumbnail URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cast, err := gokaru.ParseCast(flags.cast)
			if err != nil {
				return err
			}
			client, err := NewClientFromFlags(cmd)
			if err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}

			b := client.Thumbnail(
				gokaru.WithCategory(flags.category),
				gokaru.WithFilename(args[0]),
				gokaru.WithExtension(flags.extension),
				gokaru.WithSize(flags.width, flags.height),
				gokaru.WithCast(cast),
			)
			var out string
			if tokenOnly {
				out, err = b.Token()
			} else {
				out, err = b.Build()
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&tokenOnly, "token-only", false, "print only the signature token")

	return cmd
}

// NewSignCommand creates the sign command
func NewSignCommand() *cobra.Command {
	var flags thumbnailFlags
	var sourceType string

	cmd := &cobra.Command{
		Use:   "sign <name>",
		Short: "Print the signature token for any source type",
		Long: `Print the signature token for (type, category, name.ext, width, height, cast).

Unlike thumbnail, sign accepts the file source type, for services that sign
document previews.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cast, err := gokaru.ParseCast(flags.cast)
			if err != nil {
				return err
			}
			client, err := NewClientFromFlags(cmd)
			if err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}
			t := gokaru.SourceType(sourceType)
			publicURL, err := client.PublicURL(t)
			if err != nil {
				return err
			}
			b, err := gokaru.NewThumbnailURLBuilder(publicURL, t, client.Signature())
			if err != nil {
				return err
			}
			b.Category(flags.category).Filename(args[0]).Extension(flags.extension).
				Width(flags.width).Height(flags.height).Cast(cast)

			token, err := b.Token()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&sourceType, "type", "t", string(gokaru.SourceTypeImage), "source type: image or file")

	return cmd
}

// NewVerifyCommand creates the verify command
func NewVerifyCommand() *cobra.Command {
	var sourceType string

	cmd := &cobra.Command{
		Use:   "verify <thumbnail-url>",
		Short: "Check the signature of a thumbnail URL or path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			gen, err := cfg.Generator()
			if err != nil {
				return err
			}
			req, err := gokaru.ParseThumbnailPath(thumbnailPath(args[0]))
			if err != nil {
				return err
			}
			if err := gokaru.VerifyThumbnail(gen, gokaru.SourceType(sourceType), req); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Signature valid")
			fmt.Fprintf(out, "Category: %s\n", req.Category)
			fmt.Fprintf(out, "File: %s\n", req.FullFilename())
			fmt.Fprintf(out, "Size: %dx%d\n", req.Width, req.Height)
			fmt.Fprintf(out, "Cast: %d (%s)\n", int(req.Cast), req.Cast)
			return nil
		},
	}

	cmd.Flags().StringVarP(&sourceType, "type", "t", string(gokaru.SourceTypeImage), "source type the URL was signed for")

	return cmd
}

// NewEnvCommand creates the env command
func NewEnvCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "List supported environment variables",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), config.Usage())
		},
	}
}

// thumbnailPath returns the escaped path of a full URL, or s unchanged when it
// is already a path.
func thumbnailPath(s string) string {
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return s
	}
	return u.EscapedPath()
}
