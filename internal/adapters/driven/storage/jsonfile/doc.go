// Package jsonfile persists embedded segments as one JSON file per segment
// and reads them back.
//
// # Layout
//
// Files are grouped by book under the output directory:
//
//	<output>/<book>/<book>_<author>.json
//	<output>/<book>/<book>_<author>_2.json
//	...
//
// Each file holds {"content": ..., "metadata": {...}, "embedding": [...]}.
// Book names are sanitised with SanitizeName; spaces in the base name
// become underscores.
package jsonfile
