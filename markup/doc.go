// Package markup converts tagged text into plain text plus style runs.
//
// The markup language is a small XHTML subset:
//
//	<font family='DejaVu Sans' size='18' weight='bold' width='condensed' slant='italic'>...</font>
//	<b>...</b>
//	<i>...</i>
//	<color value='#ff0000'>...</color>
//
// Tag and attribute names are compared ignoring case. Attribute values may
// be single quoted, double quoted or bare. The XHTML entities &lt; &gt;
// &amp; &quot; &apos; and &nbsp; and numeric character references are
// decoded, and \< and \> produce literal angle brackets. Unknown tags are
// skipped and closing tags that match no open tag are ignored.
//
// The font runs of a Result can be passed to
// textmodel.Pipeline.CreateTextModel as they are.
package markup
