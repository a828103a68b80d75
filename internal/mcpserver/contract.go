package mcpserver

// EntryFormatContract describes the canonical journal entry format that
// LLM consumers should follow when creating entries.
const EntryFormatContract = `# Dagaz Entry Format Contract

A journal entry is a small .md or .txt file with an optional metadata
block followed by free-form body text.

## Structure

` + "```" + `markdown
tags: tag-one, tag-two          # OPTIONAL - comma-separated string or YAML list
id: short-name                  # OPTIONAL - unique short identifier
pubdate: 2025-08-23 14:07:31.250 +0200   # OPTIONAL - publication timestamp
---

Body text. Anything after the first line containing only three dashes.
` + "```" + `

## Rules

1. **The metadata block ends at the first line whose content is exactly
   ` + "`" + `---` + "`" + ` (surrounding whitespace ignored).** Everything before it is
   decoded as YAML key/value pairs; everything after it is the body.
2. **The block is optional.** A file that is pure prose is a valid entry
   with no metadata.
3. **` + "`" + `tags` + "`" + `** may be a comma-separated string (` + "`" + `tags: a, b` + "`" + `) or a YAML
   list (` + "`" + `tags: [a, b]` + "`" + `). Pieces of a comma-separated string are trimmed.
4. **` + "`" + `id` + "`" + `** is a non-empty string, unique across the journal. An empty
   id is treated as no id.
5. **Unknown keys are preserved** but carry no meaning.
6. **File names** are ` + "`" + `YYYY-MM-DD-<name>.md` + "`" + ` for dated entries.
7. **Encoding** is UTF-8 with a trailing newline.

## Example

` + "```" + `markdown
tags: standup, project-x
id: standup-0823
pubdate: 2025-08-23 09:15:00.000 +0200
---

Met with Alice and Bob. Follow up on the roadmap review.
` + "```" + `
`
