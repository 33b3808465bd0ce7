package rod

// Fixture pages for live-browser tests.
const (
	BasicHTML = `<!DOCTYPE html>
<html>
<head><title>Test Page</title></head>
<body>
	<h1>Hello World</h1>
</body>
</html>`

	FlatpickrHTML = `<!DOCTYPE html>
<html>
<body>
	<form>
		<input class="flatpickr-input" type="text" name="when" readonly>
	</form>
	<div id="log"></div>
	<script>
		window.flatpickr = function () {};
		const input = document.querySelector('.flatpickr-input');
		input.addEventListener('change', () => {
			document.getElementById('log').textContent = 'changed:' + input.value;
		});
	</script>
</body>
</html>`

	ShadowHTML = `<!DOCTYPE html>
<html>
<body>
	<outer-host id="outer"></outer-host>
	<closed-host id="closed"></closed-host>
	<script>
		const outer = document.getElementById('outer').attachShadow({ mode: 'open' });
		outer.innerHTML = '<middle-host id="middle"></middle-host>';
		const middle = outer.getElementById('middle').attachShadow({ mode: 'open' });
		middle.innerHTML = '<inner-host id="inner"></inner-host>';
		const inner = middle.getElementById('inner').attachShadow({ mode: 'open' });
		inner.innerHTML = '<input class="flatpickr-input" type="text">';

		const closed = document.getElementById('closed').attachShadow({ mode: 'closed' });
		closed.innerHTML = '<input class="secret" type="text">';
	</script>
</body>
</html>`

	APIHTML = `<!DOCTYPE html>
<html>
<body>
	<input id="target" type="text">
	<script>
		const el = document.getElementById('target');
		el._picker = {
			selected: null,
			setDate(start, end) { this.selected = end ? start + '/' + end : start; return this.selected; },
		};
		el.when = new Date(Date.UTC(2026, 9, 17));
	</script>
</body>
</html>`
)
