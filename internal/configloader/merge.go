package configloader

import "github.com/dcruzf/blog-data/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Strings and ints: override wins when non-zero
//   - Booleans held by pointer: override wins when non-nil
//   - Slices: override replaces base entirely if non-nil
//   - CLI-only booleans can only be switched on
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	mergeString(&result.Locale, override.Locale)
	mergeString(&result.Timezone, override.Timezone)
	mergeString(&result.DateFormat, override.DateFormat)
	mergeString(&result.ArticlesDir, override.ArticlesDir)
	mergeString(&result.AboutFile, override.AboutFile)
	mergeString(&result.TagsFile, override.TagsFile)
	mergeString(&result.Output, override.Output)
	mergeString(&result.Indent, override.Indent)

	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	mergeBool(&result.Recursive, override.Recursive)
	mergeBool(&result.Backups, override.Backups)

	if override.Ignore != nil {
		result.Ignore = append([]string(nil), override.Ignore...)
	}

	md := &result.Markdown
	mergeBool(&md.UnsafeHTML, override.Markdown.UnsafeHTML)
	mergeBool(&md.Highlight, override.Markdown.Highlight)
	mergeBool(&md.DetectLanguage, override.Markdown.DetectLanguage)
	mergeString(&md.HighlightStyle, override.Markdown.HighlightStyle)
	if override.Markdown.TOCMin != 0 {
		md.TOCMin = override.Markdown.TOCMin
	}
	if override.Markdown.TOCMax != 0 {
		md.TOCMax = override.Markdown.TOCMax
	}

	if override.DryRun {
		result.DryRun = true
	}
	if override.Summary {
		result.Summary = true
	}
	if override.Format != "" {
		result.Format = override.Format
	}

	return result
}

func mergeString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

func mergeBool(dst **bool, value *bool) {
	if value != nil {
		*dst = config.Bool(*value)
	}
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
