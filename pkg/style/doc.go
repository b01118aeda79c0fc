// Package style holds the terminal styling used by hd2mm output.
//
// Styles are declared in styles.yaml, which is embedded in the binary, and
// looked up by semantic name:
//
//	style.Paint("ModName", mod.Name)
//
// Unknown names render the text unstyled.
package style
