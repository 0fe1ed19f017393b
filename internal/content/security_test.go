package content

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSecurityValidator_Validate_CleanMarkdown_Valid(t *testing.T) {
	v := NewSecurityValidator(SecurityPolicy{})
	result := v.Validate("# Title\n\nSome *clean* markdown with a [link](https://example.com).\n")
	require.True(t, result.Valid)
	require.Empty(t, result.Findings)
}

func TestSecurityValidator_Validate_ScriptBlock_Flagged(t *testing.T) {
	v := NewSecurityValidator(SecurityPolicy{})
	result := v.Validate("Before.\n\n<script>alert(1)</script>\n")
	require.False(t, result.Valid)
	require.NotEmpty(t, result.Findings)
	require.Equal(t, "html_tag", result.Findings[0].Kind)
	require.Equal(t, "script", result.Findings[0].Detail)
}

func TestSecurityValidator_Validate_InlineEventHandler_Flagged(t *testing.T) {
	v := NewSecurityValidator(SecurityPolicy{})
	result := v.Validate("Click <a href=\"/ok\" onclick=\"steal()\">here</a>.\n")
	require.False(t, result.Valid)

	var kinds []string
	for _, f := range result.Findings {
		kinds = append(kinds, f.Kind)
	}
	require.Contains(t, kinds, "html_attr")
}

func TestSecurityValidator_Validate_JavascriptLink_Flagged(t *testing.T) {
	v := NewSecurityValidator(SecurityPolicy{})
	result := v.Validate("A [bad link](javascript:alert(1)) here.\n")
	require.False(t, result.Valid)
	require.Equal(t, "url_scheme", result.Findings[0].Kind)
}

func TestSecurityValidator_Validate_DataHTMLImage_Flagged(t *testing.T) {
	v := NewSecurityValidator(SecurityPolicy{})
	result := v.Validate("![x](data:text/html;base64,AAAA)\n")
	require.False(t, result.Valid)
	require.Equal(t, "url_scheme", result.Findings[0].Kind)
}

func TestSecurityValidator_Validate_IframeFlagged(t *testing.T) {
	v := NewSecurityValidator(SecurityPolicy{})
	result := v.Validate("<iframe src=\"https://evil.example\"></iframe>\n")
	require.False(t, result.Valid)
	require.Equal(t, "iframe", result.Findings[0].Detail)
}

func TestSecurityValidator_Validate_BlockDangerous_StripsFlaggedHTML(t *testing.T) {
	v := NewSecurityValidator(SecurityPolicy{BlockDangerous: true})
	body := "Keep this.\n\n<script>alert(1)</script>\n\nAnd this.\n"
	result := v.Validate(body)
	require.False(t, result.Valid)
	require.NotContains(t, result.Sanitized, "<script>")
	require.Contains(t, result.Sanitized, "Keep this.")
	require.Contains(t, result.Sanitized, "And this.")
}

func TestSecurityValidator_Validate_WithoutBlockDangerous_BodyUnchanged(t *testing.T) {
	v := NewSecurityValidator(SecurityPolicy{})
	body := "<script>alert(1)</script>\n"
	result := v.Validate(body)
	require.False(t, result.Valid)
	require.Equal(t, body, result.Sanitized)
}

func TestSecurityValidator_Validate_SafeInlineHTML_Valid(t *testing.T) {
	v := NewSecurityValidator(SecurityPolicy{})
	result := v.Validate("Some <em>inline</em> emphasis and a <br/> break.\n")
	require.True(t, result.Valid)
}

func TestSecurityValidator_Validate_CaseInsensitiveTagAndScheme(t *testing.T) {
	v := NewSecurityValidator(SecurityPolicy{})
	result := v.Validate("<SCRIPT>alert(1)</SCRIPT>\n\n[x](JaVaScRiPt:alert(1))\n")
	require.False(t, result.Valid)
	require.Len(t, result.Findings, 2)
}
