package openai

const imageCaptionPrompt = `Describe the image in one or two factual sentences for a search index.

Rules:
- Mention the main subject first, then any notable secondary details.
- Include visible text verbatim when it is legible.
- Do not speculate about anything that is not visible in the image.
- Do not include any preamble such as "This image shows"; start directly with the description.`

const tableSummaryPrompt = `Summarize the given table for a search index.

Rules:
- State what the table is about and what its columns represent.
- Mention notable values, totals, or outliers when present.
- Keep the summary under four sentences.
- Do not include any preamble; start directly with the summary.`
