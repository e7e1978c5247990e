// Package search turns a free-text query into candidate media links.
//
// Two backends are provided. HTML scrapes the site's results page with
// goquery, reading watch anchors and falling back to the embedded
// ytInitialData payload when the page is script-rendered. Ytdlp asks yt-dlp
// for a flat "ytsearchN:" listing. Backends return raw candidates; filtering
// and selection belong to the resolver.
package search
