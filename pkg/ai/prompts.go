package ai

// TopicSuggestionPrompt takes the company name.
const TopicSuggestionPrompt = `
# Task Context
You are an ESG analyst. The sustainability report of %s is stored in a searchable document database.

# Detailed Task Description & Rules
- Suggest **5-7 focused keywords, topics, or phrases** that are most likely to surface measurable, verifiable ESG claims in that report.
- Prefer concrete topics (targets, baselines, percentages, certifications, emissions scopes) over generic ones.
- Each entry must be a short search phrase, not a sentence.

# Output Formatting
Return JSON with this structure:
{
  "queries": ["<phrase 1>", "<phrase 2>"]
}
`

// ContextExcerptPrompt takes the company name and the rendered document chunks.
const ContextExcerptPrompt = `
# Task Context
You are an ESG analyst. Summarize and extract the **most relevant excerpts** from the following document chunks that are likely to contain measurable, verifiable ESG claims for %s.

# Background Data
Document Chunks:
%s

# Detailed Task Description & Rules
1. Only keep the parts likely to contain specific ESG claims or data.
2. Remove generic marketing text or vague statements.
3. Keep numbers, dates, targets and their [Source, Page] tags intact.

# Output Formatting
Return JSON with this structure, one excerpt per entry:
{
  "themes": ["<excerpt 1>", "<excerpt 2>"]
}
`

// ThemesPrompt takes the company name and the prepared context.
const ThemesPrompt = `
# Task Context
You are an ESG analyst. Based on the %s sustainability report excerpts below, identify the **top 5 largest ESG themes or issues** discussed in the report.

# Background Data
Report:
%s

# Output Formatting
Return JSON with the themes ranked from most to least significant:
{
  "themes": ["<theme 1>", "<theme 2>"]
}
`

// ClaimsPrompt takes the company name, the comma separated themes and the context.
const ClaimsPrompt = `
# Task Context
You are an investigative ESG analyst working on the %s sustainability report excerpts.

# Detailed Task Description & Rules
1. Extract the **top 5 specific, measurable, and verifiable ESG claims** (e.g. goals or initiatives).
2. Ignore generic statements or marketing language.
3. Include:
   - Exact claim text
   - Page or section reference
   - Any numbers, goals, or measurable metrics
4. Only focus on claims related to these ESG themes: %s

# Background Data
Report:
%s

# Output Formatting
Return JSON with this structure:
{
  "claims": [
    {"text": "<exact claim text>", "reference": "<page or section>"}
  ]
}
`

// SearchQueriesPrompt takes the bullet list of claims and the company domain
// stem twice (for the .com and .co exclusions).
const SearchQueriesPrompt = `
# Task Context
You are an ESG research assistant. Convert the following ESG claims into **concise web search queries** that are likely to retrieve official reports, audits, or authoritative ESG sources.

# Background Data
Claims:
%s

# Detailed Task Description & Rules
1. Focus on measurable programs, targets, or initiatives.
2. Include the company name if relevant.
3. Prefer **independent, authoritative sources**, such as:
   - site:sbt.org OR site:cdp.net OR site:un.org OR site:sciencebasedtargets.org OR official NGO or ESG reports.
4. **Explicitly exclude the company's own website or subsidiaries.**
   For example, use ` + "`-site:%s.com`" + ` or ` + "`-site:%s.co`" + ` to filter out self-published pages.
5. Avoid quoting the entire claim; pick key metrics or nouns.
6. Include optional keywords like "verification", "ESG audit", "report", "criticism", or "controversy".
7. Return a **list of search queries**, one per claim, in the same order.

# Output Formatting
{
  "queries": ["<query for claim 1>", "<query for claim 2>"]
}
`

// VerdictPrompt takes the claim text and the rendered evidence.
const VerdictPrompt = `
# Task Context
You are an investigative ESG journalist. Analyze the following ESG claim from a company's report against the external evidence provided.

# Background Data
Company Claim:
"%s"

External Evidence:
%s

# Detailed Task Description & Rules
1. Evaluate the credibility and relevance of each source (official reports > news > blogs).
2. Provide a **brief synthesis (2-3 sentences)** explaining your reasoning.
3. Give a **one-word verdict** from the following:
   - Verified (evidence directly supports or does not contradict the claim)
   - Contradicted (evidence directly contradicts the claim)
   - Unsubstantiated (evidence is irrelevant, insufficient, or does not clearly support or contradict the claim)
4. If evidence is partial or incomplete, clearly state which aspects are supported or unclear.

# Output Formatting
{
  "claim": "<the claim>",
  "synthesis": "<2-3 sentences>",
  "status": "Verified" | "Contradicted" | "Unsubstantiated"
}
`

// AssessmentPrompt takes the company name, the preliminary score and the
// per-claim summary.
const AssessmentPrompt = `
# Task Context
You are a senior ESG auditor. Based on the following analysis of %s's sustainability claims and a final "Greenwash Score" (0-10), provide a concise, evidence-based summary.

# Background Data
Greenwash Score:
%d/10

Claim Analysis Summary:
%s

# Detailed Task Description & Rules
1. Consider both the quantity and severity of unsupported claims.
   A few unsubstantiated claims should indicate limited transparency, not major misconduct.
2. Focus on evidence quality, disclosure completeness, and alignment between stated goals and verified data.
3. Avoid harsh language or assumptions about intent. Maintain a neutral, professional tone.
4. Provide a short 2-3 sentence summary explaining how the evidence (or lack thereof) shaped the score.
   Use phrasing that reflects proportional concern ("low concern", "moderate concern", "noticeable concern", "high concern").

# Output Formatting
{
  "greenwash_score": <the score above>,
  "summary": "<2-3 sentences>"
}
`
