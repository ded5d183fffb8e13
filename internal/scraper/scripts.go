package scraper

import "fmt"

// stealthScript masks the automation flag before any page script runs.
// Spotify serves a degraded shell to pages that detect webdriver.
const stealthScript = `Object.defineProperty(navigator, 'webdriver', {get: () => undefined})`

// playlistInfoScript extracts the page title and a default artist hint.
//
// Artist tiers, in order: explicit creator link → entity-header artist link →
// og:description split on '·' (rejecting boilerplate) → page title " by "
// split. An empty artist means every tier missed.
const playlistInfoScript = `(() => {
	const info = { title: '', artist: '' };

	const h1 = document.querySelector('h1');
	if (h1) info.title = h1.innerText.trim();

	const creator = document.querySelector('a[data-testid="creator-link"]');
	if (creator) {
		info.artist = creator.innerText.trim();
		return info;
	}

	const headerArtist = document.querySelector('div[data-testid="entity-header"] a[href*="/artist/"]');
	if (headerArtist) {
		info.artist = headerArtist.innerText.trim();
		return info;
	}

	const meta = document.querySelector('meta[property="og:description"]');
	if (meta) {
		const content = meta.getAttribute('content') || '';
		const candidate = content.split('·')[0].trim();
		if (candidate && !candidate.includes('Listen to') && !candidate.includes('Spotify')) {
			info.artist = candidate;
			return info;
		}
	}

	if (document.title.includes(' by ')) {
		info.artist = document.title.split(' by ')[1].split(' |')[0].trim();
	}
	return info;
})()`

// extractRowsScript pulls raw (title, artist) pairs out of the rendered
// track list. Tier order is deliberate and must not be reordered:
//
// Scope: the playlist or album track-list container when present; otherwise
// the whole document, minus rows nested under a recommendations region
// (matched by data-testid substring or localized label).
//
// Title: dedicated track link / title element text, else the row's
// aria-label (split on " by " when present, whole label otherwise).
//
// Artist: explicit artist links joined with ", " → sibling text nodes near
// the title element minus the title itself and noise tokens (explicit-content
// marker "E", bullet separator) → aria-label text after the last " by ".
// Empty artist is resolved on the Go side (album default, then "Unknown").
const extractRowsScript = `(() => {
	let container = document.querySelector('div[data-testid="playlist-tracklist"]');
	if (!container) container = document.querySelector('div[data-testid="album-tracklist"]');

	const root = container || document;

	let rows = Array.from(root.querySelectorAll(
		'div[role="row"], div[data-testid="tracklist-row"], div[data-testid="track-row"]'
	));

	if (!container) {
		rows = rows.filter((row) => {
			let parent = row.parentElement;
			while (parent && parent !== document.body) {
				const testId = parent.getAttribute('data-testid') || '';
				const label = parent.getAttribute('aria-label') || '';
				if (testId.includes('recommend') || label.includes('Recommended') || label.includes('Önerilenler')) return false;
				parent = parent.parentElement;
			}
			return true;
		});
	}

	return rows.map((row) => {
		let title = '';
		const titleEl = row.querySelector('a[data-testid="internal-track-link"], div[dir="auto"], a[href*="/track/"]');

		if (titleEl) {
			title = titleEl.innerText.trim();
		} else {
			const rowLabel = row.getAttribute('aria-label');
			if (rowLabel) {
				title = rowLabel.includes(' by ') ? rowLabel.split(' by ')[0].trim() : rowLabel;
			}
		}

		let artist = '';

		const artistEls = Array.from(row.querySelectorAll('a[href*="/artist/"]'));
		if (artistEls.length > 0) {
			artist = artistEls.map((el) => el.innerText.trim()).join(', ');
		}

		if (!artist && titleEl && titleEl.parentElement) {
			const texts = Array.from(titleEl.parentElement.querySelectorAll('span[data-encore-id="text"], div'))
				.map((el) => el.innerText.trim())
				.filter((t) => t !== title && t !== '' && t !== 'E' && t !== '•');
			if (texts.length > 0) artist = texts[0];
		}

		if (!artist) {
			const rowLabel = row.getAttribute('aria-label');
			if (rowLabel && rowLabel.includes(' by ')) {
				const parts = rowLabel.split(' by ');
				if (parts.length > 1) artist = parts[parts.length - 1].trim();
			}
		}

		return { title, artist };
	});
})()`

// metaSongURLsScript reads the song-identifying meta tags used by the
// fallback parse when the primary extractor found nothing.
const metaSongURLsScript = `(() =>
	Array.from(document.querySelectorAll('meta[name="music:song"]')).map((m) => m.content)
)()`

// scrollScript scrolls to the page bottom count times with delayMS between
// iterations, triggering lazy-loaded rows.
func scrollScript(count, delayMS int) string {
	return fmt.Sprintf(`(async () => {
	for (let i = 0; i < %d; i++) {
		window.scrollBy(0, document.body.scrollHeight);
		await new Promise((resolve) => setTimeout(resolve, %d));
	}
	return true;
})()`, count, delayMS)
}
