package textdiff

// platformEOL is the line ending used for synthesized output lines.
const platformEOL = "\r\n"
