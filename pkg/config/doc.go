// Package config loads rendering configuration (block templates, the inline
// style table and permalink prefixes) from JSON, YAML or TOML files held in
// an fs.FS. A default theme targeting article hosts that only honour inline
// styles is embedded in the package.
//
// File layout:
//
//	permalinks:
//	  - https://mp.weixin.qq.com/
//	inline:
//	  strong: "font-weight: bold;"
//	templates:
//	  paragraph:
//	    default:
//	      tag: p
//	      style: {fontSize: 15px}
//	      children:
//	        - tag: span
//	          content: true
//
// Styles may be a mapping (order preserved) or a CSS declaration string.
// TOML files must use the string form.
package config

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'blockhtml.config'.
func tracer() tracing.Trace {
	return tracing.Select("blockhtml.config")
}
